package appointment

import "errors"

// Erros de armazenamento; os casos de uso traduzem para códigos de negócio.
var (
	ErrNotFound = errors.New("record not found")

	// ErrTransient: conflito de serialização ou deadlock; vale uma nova tentativa.
	ErrTransient = errors.New("transient transaction failure")

	// ErrLockTimeout: a trava do barbeiro não foi obtida a tempo.
	ErrLockTimeout = errors.New("barber lock timeout")

	// ErrOverlapConstraint: a constraint de exclusão do banco recusou a inserção.
	ErrOverlapConstraint = errors.New("appointment overlap constraint")
)
