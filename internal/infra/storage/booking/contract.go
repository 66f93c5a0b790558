package booking

import "github.com/baydesk/BayBookingService/pkg/txmanager"

// DBExecutor is the query surface the repository needs; inside a
// transaction the executor is picked out of the context instead.
type DBExecutor = txmanager.DBExecutor
