package dto

// DashboardSummaryResponse tarjetas del dashboard.
type DashboardSummaryResponse struct {
	TotalSites        int `json:"total_sites"`
	ActiveSites       int `json:"active_sites"`
	TotalArticles     int `json:"total_articles"`
	ActiveAutomations int `json:"active_automations"`
	TokenBalance      int `json:"token_balance"`
}
