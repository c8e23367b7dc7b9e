package entity

// Stats aggregates dashboard counters.
type Stats struct {
	TotalMovies    int64
	TotalUsers     int64
	TotalScreens   int64
	TotalShowtimes int64
	ActiveTickets  int64
	SoldTickets    int64
	Revenue        float64
	PendingReports int64
}
