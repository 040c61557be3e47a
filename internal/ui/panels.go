package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Akaiko1/image-viewer/internal/imageinfo"
)

// imagePane shows the selected image, or a message when there is none.
type imagePane struct {
	image   *canvas.Image
	message *widget.Label
	content *fyne.Container
}

func newImagePane() *imagePane {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.Hide()

	msg := widget.NewLabel(noImageMessage)
	msg.Alignment = fyne.TextAlignCenter
	msg.Wrapping = fyne.TextWrapWord

	return &imagePane{
		image:   img,
		message: msg,
		content: container.NewStack(img, container.NewCenter(msg)),
	}
}

// ShowImage implements Surface.
func (p *imagePane) ShowImage(_ string, img image.Image) {
	fyne.Do(func() {
		p.image.Image = img
		p.image.Show()
		p.image.Refresh()
		p.message.Hide()
	})
}

// ShowMessage implements Surface.
func (p *imagePane) ShowMessage(msg string) {
	fyne.Do(func() {
		p.image.Image = nil
		p.image.Hide()
		p.message.SetText(msg)
		p.message.Show()
	})
}

// statsPanel is the image statistics form.
type statsPanel struct {
	values  []*widget.Label
	content fyne.CanvasObject
}

func newStatsPanel() *statsPanel {
	rows := imageinfo.Empty()
	form := widget.NewForm()
	values := make([]*widget.Label, len(rows))
	for i, row := range rows {
		values[i] = widget.NewLabel(row.Value)
		values[i].Wrapping = fyne.TextWrapBreak
		form.Append(row.Label+":", values[i])
	}

	title := widget.NewLabel("Image Statistics")
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle.Bold = true

	return &statsPanel{
		values:  values,
		content: container.NewBorder(title, nil, nil, nil, container.NewVScroll(form)),
	}
}

// ShowInfo implements MetadataPanel.
func (p *statsPanel) ShowInfo(info *imageinfo.Info) {
	p.set(info.Rows())
}

// Clear implements MetadataPanel.
func (p *statsPanel) Clear() {
	p.set(imageinfo.Empty())
}

func (p *statsPanel) set(rows []imageinfo.Row) {
	fyne.Do(func() {
		for i, row := range rows {
			if i < len(p.values) {
				p.values[i].SetText(row.Value)
			}
		}
	})
}

// newConsoleView renders c as a list that follows the newest line.
func newConsoleView(c *Console) fyne.CanvasObject {
	list := widget.NewList(
		c.Len,
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.TextStyle.Monospace = true
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(c.Line(id))
		},
	)
	c.OnChange(func() {
		fyne.Do(func() {
			list.Refresh()
			if n := c.Len(); n > 0 {
				list.ScrollToBottom()
			}
		})
	})
	return list
}
