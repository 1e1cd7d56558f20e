package external

type ESPN_Scoreboard struct {
	Leagues []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
		Slug         string `json:"slug"`
		Season       struct {
			Year        int    `json:"year"`
			DisplayName string `json:"displayName"`
		} `json:"season"`
	} `json:"leagues"`
	Day struct {
		Date string `json:"date"`
	} `json:"day"`
	Events     []ESPN_Event `json:"events"`
	EventsDate struct {
		Date       string `json:"date"`
		SeasonType int    `json:"seasonType"`
	} `json:"eventsDate"`
}
