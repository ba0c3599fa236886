package orchestrator

import "context"

// Provisioner creates and removes case directories.
type Provisioner interface {
	Clone(ctx context.Context, root, casePath, outputPath string) error
	Destroy(path string) error
}

// CaseControl reads and writes structured-store variables of a case.
type CaseControl interface {
	SetVariable(ctx context.Context, casePath, key, value string) error
	QueryVariable(ctx context.Context, casePath, key string) (string, error)
}

// Submitter hands a case to the batch system.
type Submitter interface {
	Submit(ctx context.Context, casePath string) error
	SubmitCommand(casePath string) string
}

// Confirmer asks the operator before destructive cleanup.
type Confirmer interface {
	ConfirmClean(paths []string) (bool, error)
}
