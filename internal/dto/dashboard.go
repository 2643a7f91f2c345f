package dto

// DashboardStats summarises collection counts for the admin landing page.
type DashboardStats struct {
	TotalStudents  int64 `json:"totalStudents"`
	FacultyMembers int64 `json:"facultyMembers"`
	NewsArticles   int64 `json:"newsArticles"`
	UpcomingEvents int64 `json:"upcomingEvents"`
}
