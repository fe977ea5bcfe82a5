package group

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
