package auction

type Role string

const (
	RoleBatter       Role = "BATTER"
	RoleBowler       Role = "BOWLER"
	RoleAllRounder   Role = "ALL-ROUNDER"
	RoleWicketKeeper Role = "WICKET-KEEPER"
)

// Player is one entry in the auction pool. Prices are in lakh.
// Position in Players is the canonical auction order.
type Player struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Role      Role   `json:"role"`
	BasePrice int    `json:"basePrice"`
	Set       string `json:"set"`
	Overseas  bool   `json:"overseas"`
}

// Franchise is static roster config; FranchiseState carries the per-room view.
type Franchise struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ShortName      string `json:"shortName"`
	Color          string `json:"color"`
	SecondaryColor string `json:"secondaryColor"`
}

var Franchises = []Franchise{
	{ID: "CSK", Name: "Chennai Super Kings", ShortName: "CSK", Color: "#FFFF35", SecondaryColor: "#005CA8"},
	{ID: "MI", Name: "Mumbai Indians", ShortName: "MI", Color: "#004BA0", SecondaryColor: "#D1AB3E"},
	{ID: "RCB", Name: "Royal Challengers Bengaluru", ShortName: "RCB", Color: "#EC1C24", SecondaryColor: "#2B2A29"},
	{ID: "KKR", Name: "Kolkata Knight Riders", ShortName: "KKR", Color: "#3A225D", SecondaryColor: "#F2D06B"},
	{ID: "DC", Name: "Delhi Capitals", ShortName: "DC", Color: "#00008B", SecondaryColor: "#EF1B23"},
	{ID: "PBKS", Name: "Punjab Kings", ShortName: "PBKS", Color: "#ED1B24", SecondaryColor: "#D1D3D4"},
	{ID: "RR", Name: "Rajasthan Royals", ShortName: "RR", Color: "#EA1A85", SecondaryColor: "#004B8C"},
	{ID: "SRH", Name: "Sunrisers Hyderabad", ShortName: "SRH", Color: "#F26522", SecondaryColor: "#231F20"},
	{ID: "GT", Name: "Gujarat Titans", ShortName: "GT", Color: "#1B2133", SecondaryColor: "#B8975D"},
	{ID: "LSG", Name: "Lucknow Super Giants", ShortName: "LSG", Color: "#0057E2", SecondaryColor: "#FF4D4D"},
}

var Players = []Player{
	// Batters
	{ID: 1, Name: "Rohit Sharma", Country: "India", Role: RoleBatter, BasePrice: 200, Set: "BA1"},
	{ID: 2, Name: "Virat Kohli", Country: "India", Role: RoleBatter, BasePrice: 200, Set: "BA1"},
	{ID: 3, Name: "Travis Head", Country: "Australia", Role: RoleBatter, BasePrice: 200, Set: "BA1", Overseas: true},
	{ID: 4, Name: "Shubman Gill", Country: "India", Role: RoleBatter, BasePrice: 200, Set: "BA1"},
	{ID: 5, Name: "Devon Conway", Country: "New Zealand", Role: RoleBatter, BasePrice: 200, Set: "BA1", Overseas: true},
	{ID: 6, Name: "David Warner", Country: "Australia", Role: RoleBatter, BasePrice: 200, Set: "BA1", Overseas: true},
	{ID: 7, Name: "Yashasvi Jaiswal", Country: "India", Role: RoleBatter, BasePrice: 150, Set: "BA2"},
	{ID: 8, Name: "Ruturaj Gaikwad", Country: "India", Role: RoleBatter, BasePrice: 150, Set: "BA2"},
	{ID: 9, Name: "Suryakumar Yadav", Country: "India", Role: RoleBatter, BasePrice: 200, Set: "BA1"},
	{ID: 10, Name: "Kane Williamson", Country: "New Zealand", Role: RoleBatter, BasePrice: 200, Set: "BA1", Overseas: true},
	// All-rounders
	{ID: 11, Name: "Hardik Pandya", Country: "India", Role: RoleAllRounder, BasePrice: 200, Set: "AR1"},
	{ID: 12, Name: "Ravindra Jadeja", Country: "India", Role: RoleAllRounder, BasePrice: 200, Set: "AR1"},
	{ID: 13, Name: "Rashid Khan", Country: "Afghanistan", Role: RoleAllRounder, BasePrice: 200, Set: "AR1", Overseas: true},
	{ID: 14, Name: "Glenn Maxwell", Country: "Australia", Role: RoleAllRounder, BasePrice: 200, Set: "AR1", Overseas: true},
	{ID: 15, Name: "Andre Russell", Country: "West Indies", Role: RoleAllRounder, BasePrice: 200, Set: "AR1", Overseas: true},
	// Wicket-keepers
	{ID: 21, Name: "Rishabh Pant", Country: "India", Role: RoleWicketKeeper, BasePrice: 200, Set: "WK1"},
	{ID: 22, Name: "Heinrich Klaasen", Country: "South Africa", Role: RoleWicketKeeper, BasePrice: 200, Set: "WK1", Overseas: true},
	{ID: 23, Name: "Jos Buttler", Country: "England", Role: RoleWicketKeeper, BasePrice: 200, Set: "WK1", Overseas: true},
	{ID: 24, Name: "KL Rahul", Country: "India", Role: RoleWicketKeeper, BasePrice: 200, Set: "WK1"},
	{ID: 25, Name: "Sanju Samson", Country: "India", Role: RoleWicketKeeper, BasePrice: 200, Set: "WK1"},
	// Bowlers
	{ID: 31, Name: "Jasprit Bumrah", Country: "India", Role: RoleBowler, BasePrice: 200, Set: "BO1"},
	{ID: 32, Name: "Mitchell Starc", Country: "Australia", Role: RoleBowler, BasePrice: 200, Set: "BO1", Overseas: true},
	{ID: 33, Name: "Mohammed Shami", Country: "India", Role: RoleBowler, BasePrice: 200, Set: "BO1"},
	{ID: 34, Name: "Kagiso Rabada", Country: "South Africa", Role: RoleBowler, BasePrice: 200, Set: "BO1", Overseas: true},
	{ID: 35, Name: "Trent Boult", Country: "New Zealand", Role: RoleBowler, BasePrice: 200, Set: "BO1", Overseas: true},
}
