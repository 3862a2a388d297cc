package model

// Pair is one row of an aggregate report.
type Pair struct {
	Label  string  `json:"label"`
	Metric float64 `json:"metric"`
}

// Summary holds the headline dashboard numbers.
type Summary struct {
	TotalQuantity int64 `json:"total_quantity"`
	Providers     int   `json:"providers"`
	Receivers     int   `json:"receivers"`
	Listings      int   `json:"listings"`
	Claims        int   `json:"claims"`
}
