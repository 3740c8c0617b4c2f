package shared

import (
	"fmt"

	"github.com/zjrosen/tagsearch/internal/ui/modal"
)

// Dialog identifiers echoed back in modal.ChoiceMsg.
const (
	DialogMissingFields = "missing-fields"
	DialogConfirmDelete = "confirm-delete"
	DialogActions       = "actions"
)

// Button identifiers.
const (
	ButtonOK      = "ok"
	ButtonConfirm = "confirm"
	ButtonCancel  = "cancel"
	ButtonShare   = "share"
	ButtonEdit    = "edit"
	ButtonDelete  = "delete"
)

// MissingFieldsMessage is shown when saving with an empty tag or query.
const MissingFieldsMessage = "Enter a search query and a tag"

// MissingFieldsDialog blocks until the user acknowledges that both fields
// are required.
func MissingFieldsDialog() modal.Model {
	return modal.Alert(DialogMissingFields, "Missing fields", MissingFieldsMessage)
}

// DeletePrompt returns the confirmation question for tag.
func DeletePrompt(tag string) string {
	return fmt.Sprintf("Are you sure you want to delete the search \"%s\"?", tag)
}

// ConfirmDeleteDialog asks before removing tag.
func ConfirmDeleteDialog(tag string) modal.Model {
	return modal.Confirm(DialogConfirmDelete, "Delete search", DeletePrompt(tag), "Delete")
}

// ActionsDialog offers what can be done with a saved search.
func ActionsDialog(tag string) modal.Model {
	return modal.Menu(DialogActions, tag, []modal.Button{
		{ID: ButtonShare, Label: "Share"},
		{ID: ButtonEdit, Label: "Edit"},
		{ID: ButtonDelete, Label: "Delete", Variant: modal.ButtonDanger},
		{ID: ButtonCancel, Label: "Cancel", Variant: modal.ButtonSecondary},
	})
}
