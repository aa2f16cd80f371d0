package dto

type AdminDashboard struct {
	TotalUsers   int64       `json:"totalUsers"`
	TotalStores  int64       `json:"totalStores"`
	TotalRatings int64       `json:"totalRatings"`
	UsersByRole  []RoleCount `json:"usersByRole"`
}

type StoreOwnerDashboard struct {
	Store   StoreSummary     `json:"store"`
	Ratings []RatingWithUser `json:"ratings"`
}
