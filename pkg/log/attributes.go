// Package log defines standard attribute keys for linear-algebra operations.
//
// Keys follow a hierarchical naming convention (e.g. "matrix.rows",
// "task.id") so JSON output can be filtered per concern.

package log

// Operation Context
const (
	// OperationKey names the matrix operation being performed.
	// Standard values are the Operation* constants below.
	OperationKey = "linalg.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "async", "minimize", "stream"
	ComponentKey = "linalg.component"

	// RoutineKey names the numerical kernel routine (e.g. "getrf", "gesvd").
	RoutineKey = "linalg.routine"

	// StatusKey records the integer status returned by a kernel routine.
	StatusKey = "linalg.status"
)

// Matrix Shape
const (
	// RowsKey records the row count of the primary operand.
	RowsKey = "matrix.rows"

	// ColsKey records the column count of the primary operand.
	ColsKey = "matrix.cols"

	// NameKey records the optional display name of a matrix.
	NameKey = "matrix.name"

	// ComponentsKey records the number of principal components kept by PCA.
	ComponentsKey = "pca.components"

	// VarianceKey records the requested variance fraction for PCA.
	VarianceKey = "pca.variance"
)

// Task Lifecycle
const (
	// TaskIDKey is the unique id assigned to an async task.
	TaskIDKey = "task.id"

	// TaskNameKey is the task kind (e.g. "inverse", "pca", "solve").
	TaskNameKey = "task.name"

	// TaskStateKey is the lifecycle state: prepared, running, completed.
	TaskStateKey = "task.state"

	// TaskModeKey is "sync" or "async".
	TaskModeKey = "task.mode"

	// WorkerIDKey identifies the worker goroutine that executed a task.
	WorkerIDKey = "task.worker"
)

// Performance and Optimization
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// MethodKey records the optimization method.
	MethodKey = "optimize.method"

	// IterationKey records the number of major iterations performed.
	IterationKey = "optimize.iterations"

	// EvaluationsKey records the number of objective evaluations.
	EvaluationsKey = "optimize.evaluations"

	// ValueKey records the objective value at the reported point.
	ValueKey = "optimize.value"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Error Context
const (
	// ErrorTypeKey categorizes the error encountered.
	// Examples: "ShapeError", "SingularMatrixError"
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationMul           = "mul"
	OperationInverse       = "inverse"
	OperationPseudoInverse = "pinv"
	OperationSVD           = "svd"
	OperationPCA           = "pca"
	OperationSolve         = "solve"
	OperationRead          = "read"

	StatePrepared  = "prepared"
	StateRunning   = "running"
	StateCompleted = "completed"

	ModeSync  = "sync"
	ModeAsync = "async"
)
