package external

type ESPN_Comp struct {
	ID          string            `json:"id"`
	UID         string            `json:"uid"`
	Date        string            `json:"date"`
	NeutralSite bool              `json:"neutralSite"`
	Competitors []ESPN_Competitor `json:"competitors"`
	Status      struct {
		Clock        float64 `json:"clock"`
		DisplayClock string  `json:"displayClock"`
		Period       int     `json:"period"`
		Type         struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			State       string `json:"state"`
			Completed   bool   `json:"completed"`
			Description string `json:"description"`
		} `json:"type"`
	} `json:"status"`
	StartDate string `json:"startDate"`
}

type ESPN_Competitor struct {
	ID       string    `json:"id"`
	UID      string    `json:"uid"`
	Type     string    `json:"type"`
	Order    int       `json:"order"`
	HomeAway string    `json:"homeAway"`
	Team     ESPN_Team `json:"team"`
	Score    string    `json:"score"`
}
