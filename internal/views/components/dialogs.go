package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MaxResizeWidth bounds the width accepted by the resize dialog
const MaxResizeWidth = 10000

// IntRangeValidator accepts base-10 integers in [lo, hi]
func IntRangeValidator(lo, hi int) fyne.StringValidator {
	return func(text string) error {
		value, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if value < lo || value > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// NewIntEntry creates an entry holding initial and validated against
// [lo, hi]
func NewIntEntry(initial, lo, hi int) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(strconv.Itoa(initial))
	entry.Validator = IntRangeValidator(lo, hi)
	return entry
}

// entryValue parses an entry that passed its validator
func entryValue(entry *widget.Entry) (int, bool) {
	if entry.Validate() != nil {
		return 0, false
	}
	value, err := strconv.Atoi(strings.TrimSpace(entry.Text))
	return value, err == nil
}

// NewResizeDialog asks for a new width. The height follows from the aspect
// ratio, so only the width is requested.
func NewResizeDialog(currentWidth int, onSubmit func(width int), parent fyne.Window) dialog.Dialog {
	width := NewIntEntry(currentWidth, 1, MaxResizeWidth)

	items := []*widget.FormItem{
		widget.NewFormItem("Width", width),
	}
	items[0].HintText = fmt.Sprintf("1 to %d pixels, height keeps the aspect ratio", MaxResizeWidth)

	return dialog.NewForm("Resize", "Resize", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		if w, ok := entryValue(width); ok {
			onSubmit(w)
		}
	}, parent)
}

// NewCropDialog asks for the size of a centered crop no larger than the
// current image
func NewCropDialog(currentWidth, currentHeight int, onSubmit func(width, height int), parent fyne.Window) dialog.Dialog {
	width := NewIntEntry(currentWidth, 1, currentWidth)
	height := NewIntEntry(currentHeight, 1, currentHeight)

	items := []*widget.FormItem{
		widget.NewFormItem("Width", width),
		widget.NewFormItem("Height", height),
	}
	items[0].HintText = fmt.Sprintf("1 to %d", currentWidth)
	items[1].HintText = fmt.Sprintf("1 to %d", currentHeight)

	return dialog.NewForm("Crop", "Crop", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		w, okW := entryValue(width)
		h, okH := entryValue(height)
		if okW && okH {
			onSubmit(w, h)
		}
	}, parent)
}

// NewErrorDialog reports err under a title naming the action that failed,
// such as "Save failed"
func NewErrorDialog(title string, err error, parent fyne.Window) *dialog.CustomDialog {
	message := widget.NewLabel(err.Error())
	message.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, message)
	return dialog.NewCustom(title, "OK", content, parent)
}
