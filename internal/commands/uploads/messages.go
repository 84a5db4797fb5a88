package uploadscmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importArchiveMessageType = "knowbase.uploads.import_archive"

// ImportArchiveCommand ingests a zip archive of markdown documents: every
// .md entry is rendered and stored under its archive path.
type ImportArchiveCommand struct {
	// Archive holds the raw zip bytes as received from the upload form.
	Archive []byte `json:"archive"`
	// Filename is the client-supplied archive name, carried for logging only.
	Filename string `json:"filename,omitempty"`
}

// Type implements command.Message.
func (ImportArchiveCommand) Type() string { return importArchiveMessageType }

// Validate ensures archive bytes are present before handlers execute.
func (cmd ImportArchiveCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Archive, validation.Required.Error("archive is required")),
	)
}
