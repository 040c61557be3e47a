package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Akaiko1/image-viewer/internal/browser"
	"github.com/Akaiko1/image-viewer/internal/clipboard"
	"github.com/Akaiko1/image-viewer/internal/config"
	"github.com/Akaiko1/image-viewer/internal/detect"
	"github.com/Akaiko1/image-viewer/internal/display"
	"github.com/Akaiko1/image-viewer/internal/events"
	"github.com/Akaiko1/image-viewer/internal/imageinfo"
	"github.com/Akaiko1/image-viewer/internal/logging"
	"github.com/Akaiko1/image-viewer/internal/renderer"
	"github.com/Akaiko1/image-viewer/internal/rootpath"
	"github.com/Akaiko1/image-viewer/internal/scanner"
	"github.com/Akaiko1/image-viewer/internal/watch"
)

const (
	// UI Constants
	appID    = "io.github.akaiko1.image-viewer"
	appTitle = "Image Viewer"

	// Messages
	msgStarted     = "Image Viewer started. Select an image from the file browser."
	msgCopySuccess = "File tree copied to clipboard!"
	msgDisabled    = "File browser disabled: the image folder is unavailable."

	detectTimeout = 60 * time.Second
	scanTimeout   = 30 * time.Second
)

// Options carries what the host needs besides the config.
type Options struct {
	Root     rootpath.Resolution
	RootErr  error // discovery failure; the browser stays disabled
	Detector detect.Detector
	Logger   *logging.Logger
}

// ViewerApp is the main GUI application.
type ViewerApp struct {
	// Core components
	app    fyne.App
	window fyne.Window
	config *config.Config
	log    *logging.Logger

	// Services
	browser   *browser.Browser
	bus       *events.Bus
	router    *router
	model     *treeModel
	watcher   *watch.Watcher
	clipboard clipboard.ClipboardManager
	console   *Console
	rootErr   error

	// UI components
	tree      *widget.Tree
	images    *imagePane
	stats     *statsPanel
	detectBtn *widget.Button
}

// NewViewerApp wires the browser, the bus and the panes together.
func NewViewerApp(cfg *config.Config, opts Options) *ViewerApp {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Detector == nil {
		opts.Detector = detect.Unavailable{}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.FileImageIcon())

	window := fyneApp.NewWindow(appTitle)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	console := NewConsole(cfg.ConsoleLines)
	log := opts.Logger.Tee(console).Component("ui")

	a := &ViewerApp{
		app:       fyneApp,
		window:    window,
		config:    cfg,
		log:       log,
		bus:       events.NewBus(0),
		clipboard: clipboard.NewFyneClipboardManager(fyneApp.Clipboard()),
		console:   console,
		images:    newImagePane(),
		stats:     newStatsPanel(),
		rootErr:   opts.RootErr,
	}

	a.router = &router{
		surface:   a.images,
		panel:     a.stats,
		sink:      console,
		detector:  opts.Detector,
		minScore:  cfg.Detection.MinScore,
		maxWidth:  int(cfg.Window.Width),
		maxHeight: int(cfg.Window.Height),
		loadImage: display.Load,
		loadInfo:  imageinfo.Load,
	}
	if err := a.router.subscribe(a.bus); err != nil {
		log.Error().Err(err).Msg("subscribing selection handlers")
	}

	if opts.RootErr == nil {
		a.initBrowser(opts.Root)
	}
	return a
}

func (a *ViewerApp) initBrowser(root rootpath.Resolution) {
	filter, err := browser.NewExtensionFilter(a.config.Extensions)
	if err != nil {
		a.rootErr = err
		return
	}
	b, err := browser.New(root, filter, a.bus, browser.Options{
		ShowHidden: a.config.ShowHidden,
		SortDirs:   a.config.SortDirs,
		Logger:     a.log,
	})
	if err != nil {
		a.rootErr = err
		return
	}
	a.browser = b
	a.model = newTreeModel(b, a.log)

	if a.config.Watch {
		w, err := watch.New(b, 32, a.log)
		if err != nil {
			a.log.Warn().Err(err).Msg("filesystem watching unavailable")
			return
		}
		a.watcher = w
	}
}

// Run starts the application.
func (a *ViewerApp) Run() {
	a.window.SetContent(a.createMainContent())
	a.startWatching()
	a.window.SetOnClosed(a.shutdown)
	a.window.Show()
	a.reportRoot()
	a.app.Run()
}

// createMainContent lays out browser | image over console | statistics.
func (a *ViewerApp) createMainContent() fyne.CanvasObject {
	middle := container.NewVSplit(a.images.content, newConsoleView(a.console))
	middle.SetOffset(0.78)

	right := container.NewHSplit(middle, a.stats.content)
	right.SetOffset(0.75)

	main := container.NewHSplit(a.createBrowserPane(), right)
	main.SetOffset(0.22)

	return container.NewBorder(a.createToolbar(), nil, nil, nil, main)
}

func (a *ViewerApp) createToolbar() fyne.CanvasObject {
	a.detectBtn = widget.NewButtonWithIcon("Detect Objects", theme.SearchIcon(), a.handleDetect)
	if !a.router.detector.Available() {
		a.detectBtn.Disable()
	}
	copyTreeBtn := widget.NewButtonWithIcon("Copy Tree", theme.ContentCopyIcon(), a.handleCopyTree)
	copyPathBtn := widget.NewButtonWithIcon("Copy Path", theme.FileIcon(), a.handleCopyPath)
	if a.browser == nil {
		copyTreeBtn.Disable()
		copyPathBtn.Disable()
	}
	return container.NewHBox(copyPathBtn, copyTreeBtn, a.detectBtn)
}

// createBrowserPane returns the root-pinned tree, or an inert placeholder
// when the root is unavailable.
func (a *ViewerApp) createBrowserPane() fyne.CanvasObject {
	title := widget.NewLabel("File Browser")
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle.Bold = true

	if a.browser == nil {
		placeholder := widget.NewLabel(msgDisabled)
		placeholder.Wrapping = fyne.TextWrapWord
		placeholder.Importance = widget.DangerImportance
		return container.NewBorder(title, nil, nil, nil, placeholder)
	}

	a.tree = a.createTree()
	rootLabel := widget.NewLabel(a.browser.Root().Original)
	rootLabel.Truncation = fyne.TextTruncateEllipsis
	rootLabel.Importance = widget.LowImportance
	return container.NewBorder(container.NewVBox(title, rootLabel), nil, nil, nil, a.tree)
}

// createTree creates the tree widget.
func (a *ViewerApp) createTree() *widget.Tree {
	tree := widget.NewTree(
		a.model.childUIDs,
		a.model.isBranch,
		a.createTreeNode,
		a.updateTreeNode,
	)
	tree.Root = a.model.rootID()
	bindActivation(tree, a.handleActivate)
	tree.OnBranchOpened = func(uid widget.TreeNodeID) {
		if a.watcher == nil {
			return
		}
		if err := a.watcher.Add(uid); err != nil {
			a.log.Debug().Err(err).Str("path", uid).Msg("not watching branch")
		}
	}
	tree.OnBranchClosed = func(uid widget.TreeNodeID) {
		if a.watcher != nil && uid != tree.Root {
			a.watcher.Remove(uid)
		}
	}
	return tree
}

// createTreeNode creates a new tree node widget.
func (a *ViewerApp) createTreeNode(branch bool) fyne.CanvasObject {
	icon := theme.FileIcon()
	if branch {
		icon = theme.FolderIcon()
	}
	return container.NewHBox(widget.NewIcon(icon), widget.NewLabel("Item"))
}

// updateTreeNode updates a tree node widget. Non-image files stay visible but
// are drawn with low importance.
func (a *ViewerApp) updateTreeNode(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	box, ok := obj.(*fyne.Container)
	if !ok || len(box.Objects) != 2 {
		return
	}
	icon, _ := box.Objects[0].(*widget.Icon)
	label, _ := box.Objects[1].(*widget.Label)
	if icon == nil || label == nil {
		return
	}

	entry, known := a.model.entry(uid)
	switch {
	case branch:
		icon.SetResource(theme.FolderIcon())
	case known && entry.IsImage:
		icon.SetResource(theme.FileImageIcon())
	default:
		icon.SetResource(theme.FileIcon())
	}

	label.Importance = widget.MediumImportance
	if known && entry.Dimmed {
		label.Importance = widget.LowImportance
	}
	label.SetText(filepath.Base(uid))
}

// bindActivation sends every tap on tree to activate. The selection is
// dropped right away because Tree.Select ignores the selected node, and a
// repeated tap must still be reported.
func bindActivation(tree *widget.Tree, activate func(uid widget.TreeNodeID)) {
	tree.OnSelected = func(uid widget.TreeNodeID) {
		activate(uid)
		tree.Unselect(uid)
	}
}

// handleActivate runs on the UI thread for every tree click.
func (a *ViewerApp) handleActivate(uid widget.TreeNodeID) {
	res := a.browser.Activate(uid)
	if res.Kind == browser.Discarded {
		a.log.Debug().Str("path", uid).AnErr("reason", res.Reason).Msg("activation discarded")
	}
}

func (a *ViewerApp) handleDetect() {
	a.detectBtn.Disable()
	go func() {
		defer fyne.Do(func() {
			if a.router.detector.Available() {
				a.detectBtn.Enable()
			}
		})
		ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
		defer cancel()
		if _, err := a.router.detectCurrent(ctx); err != nil {
			a.log.Debug().Err(err).Msg("detection did not run")
		}
	}()
}

func (a *ViewerApp) handleCopyPath() {
	path := a.router.currentPath()
	if path == "" {
		dialog.ShowInformation("No Image", noImageMessage, a.window)
		return
	}
	if err := a.clipboard.SetContent(path); err != nil {
		a.showError("Clipboard Error", err)
		return
	}
	a.console.Log("Copied path: %s", path)
}

// handleCopyTree snapshots the root off the UI thread and copies the
// rendered tree.
func (a *ViewerApp) handleCopyTree() {
	root := a.browser.Root().Original
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		result, err := scanner.NewTreeScanner(a.browser, a.config.MaxDepth, a.log).ScanDirectory(ctx, root)
		fyne.Do(func() {
			if err != nil {
				a.showError("Scan Error", err)
				return
			}
			text := (&renderer.StandardTreeRenderer{}).RenderTree(result)
			if err := a.clipboard.SetContent(text); err != nil {
				a.showError("Clipboard Error", err)
				return
			}
			a.console.Log("Copied tree of %d images", result.ImageCount)
			dialog.ShowInformation("Success", msgCopySuccess, a.window)
		})
	}()
}

// startWatching refreshes tree branches whose directories change.
func (a *ViewerApp) startWatching() {
	if a.watcher == nil {
		return
	}
	if a.tree == nil {
		a.watcher.Stop()
		return
	}
	if err := a.watcher.Add(a.model.rootID()); err != nil {
		a.log.Warn().Err(err).Msg("cannot watch root")
	}
	if err := a.watcher.Start(); err != nil {
		a.log.Warn().Err(err).Msg("watcher did not start")
		a.watcher.Stop()
		return
	}
	go func() {
		for change := range a.watcher.Changes() {
			a.model.invalidate(change.Dir)
			fyne.Do(func() {
				a.tree.Refresh()
			})
		}
	}()
}

// rootNotice is what the user is told about the root at startup.
type rootNotice struct {
	Title   string
	Message string
	Err     error // set when the browser is disabled
}

// noticeForRoot returns the dialog to show for root, if any. An unavailable
// root is an error; a fallback to the working directory is a warning.
func noticeForRoot(root rootpath.Resolution, rootErr error) (rootNotice, bool) {
	switch {
	case rootErr != nil:
		return rootNotice{Title: "Image Folder Unavailable", Err: rootErr}, true
	case root.Source == rootpath.Fallback:
		return rootNotice{
			Title:   "Image Folder Not Found",
			Message: fmt.Sprintf("No 'images' directory was found.\nBrowsing the working directory instead:\n%s", root.Original),
		}, true
	}
	return rootNotice{}, false
}

// reportRoot tells the user how the root was obtained.
func (a *ViewerApp) reportRoot() {
	var root rootpath.Resolution
	if a.browser != nil {
		root = a.browser.Root()
		a.console.Log(msgStarted)
		a.console.Log("Browsing: %s", root.Original)
	}

	n, ok := noticeForRoot(root, a.rootErr)
	switch {
	case !ok:
	case n.Err != nil:
		a.log.Error().Err(n.Err).Msg("image folder unavailable")
		a.showError(n.Title, n.Err)
	default:
		a.log.Warn().Str("root", root.Original).Msg("no images directory found, using working directory")
		dialog.ShowInformation(n.Title, n.Message, a.window)
	}
}

func (a *ViewerApp) shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.bus.Close(events.ItemSelected)
	a.bus.Close(events.ImageSelected)
}

// showError shows an error dialog.
func (a *ViewerApp) showError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.window)
}
