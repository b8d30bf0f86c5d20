package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// UndoShortcut is Ctrl+Z, or Cmd+Z on macOS
var UndoShortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}

// NewMainMenu builds the File and Edit menus
func NewMainMenu(actions Actions) *fyne.MainMenu {
	open := fyne.NewMenuItem("Open...", actions.call(actions.Open))
	open.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}

	save := fyne.NewMenuItem("Save...", actions.call(actions.Save))
	save.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}

	quit := fyne.NewMenuItem("Quit", actions.call(actions.Quit))
	quit.IsQuit = true

	undo := fyne.NewMenuItem("Undo", actions.call(actions.Undo))
	undo.Shortcut = UndoShortcut

	file := fyne.NewMenu("File", open, save, fyne.NewMenuItemSeparator(), quit)
	edit := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Resize...", actions.call(actions.Resize)),
		fyne.NewMenuItem("Crop...", actions.call(actions.Crop)),
		fyne.NewMenuItem("Convert to Grayscale", actions.call(actions.Grayscale)),
		fyne.NewMenuItemSeparator(),
		undo,
	)

	return fyne.NewMainMenu(file, edit)
}
