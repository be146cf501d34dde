package teams

// nflTeams is the NFL list in upstream team-number order. Slots 31 and 32
// are unused by the upstream.
var nflTeams = []string{
	"Atlanta Falcons",
	"Buffalo Bills",
	"Chicago Bears",
	"Cincinnati Bengals",
	"Cleveland Browns",
	"Dallas Cowboys",
	"Denver Broncos",
	"Detroit Lions",
	"Green Bay Packers",
	"Tennessee Titans",
	"Indianapolis Colts",
	"Kansas City Chiefs",
	"Oakland Raiders",
	"St. Louis Rams",
	"Miami Dolphins",
	"Minnesota Vikings",
	"New England Patriots",
	"New Orleans Saints",
	"New York Giants",
	"New York Jets",
	"Philadelphia Eagles",
	"Arizona Cardinals",
	"Pittsburgh Steelers",
	"San Diego Chargers",
	"San Francisco 49ers",
	"Seattle Seahawks",
	"Tampa Bay Buccaneers",
	"Washington Redskins",
	"Carolina Panthers",
	"Jacksonville Jaguars",
	"",
	"",
	"Baltimore Ravens",
	"Houston Texans",
}
