// Package audit mirrors evaluation outcomes to an append-only sink. The
// sink is a collaborator boundary: persistence failures are never fatal and
// never block the response path.
package audit

import (
	"context"

	"github.com/ppiankov/credence/internal/model"
)

// Sink accepts append-only audit records.
type Sink interface {
	Append(ctx context.Context, record model.AuditRecord) error
}
