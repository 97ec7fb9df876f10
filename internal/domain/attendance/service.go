package attendance

import (
	"context"

	"github.com/hadirly/attendance-backend-go/internal/domain/user"
)

type Service interface {
	// CheckIn opens a new attendance record for the caller.
	CheckIn(ctx context.Context, identity user.Identity, req CheckInRequest) (CheckInResult, error)

	// CheckOut closes the caller's open record and recomputes its status.
	CheckOut(ctx context.Context, identity user.Identity, req CheckOutRequest) (CheckOutResult, error)

	// UploadProof attaches a proof-of-work image to an open WFH record
	// owned by the caller.
	UploadProof(ctx context.Context, identity user.Identity, req UploadProofRequest) (UploadProofResult, error)

	// History returns filtered, paginated records plus a summary. Non-admin
	// callers can only see their own records.
	History(ctx context.Context, identity user.Identity, f Filter) (HistoryResult, error)

	// ExportCSV renders the filtered set as a CSV report. Admin only.
	ExportCSV(ctx context.Context, identity user.Identity, f Filter) (ExportResult, error)
}
