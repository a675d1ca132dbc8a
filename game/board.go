package game

const (
	boardColumns = 6
	boardRows    = 5
)

// NewBoard builds the reference board: a 6x5 taxi grid numbered row by row
// from 1, overlaid with bus and underground lines and a ferry between two
// corners.
func NewBoard() *Graph {
	g := NewGraph()

	for row := 0; row < boardRows; row++ {
		for col := 0; col < boardColumns; col++ {
			loc := Location(row*boardColumns + col + 1)
			g.AddLocation(loc)
			if col+1 < boardColumns {
				g.AddEdge(loc, loc+1, Taxi)
			}
			if row+1 < boardRows {
				g.AddEdge(loc, loc+boardColumns, Taxi)
			}
		}
	}

	for _, network := range []struct {
		route Route
		lines [][]Location
	}{
		{Bus, busLines},
		{Underground, undergroundLines},
		{Boat, boatLines},
	} {
		for _, line := range network.lines {
			for i := 0; i+1 < len(line); i++ {
				g.AddEdge(line[i], line[i+1], network.route)
			}
		}
	}

	g.SetCorners(boardCorners...)
	return g
}

var busLines = [][]Location{
	{1, 3, 5, 17, 29},
	{7, 9, 21, 27},
	{2, 14, 16, 28},
	{12, 10, 22, 24},
}

var undergroundLines = [][]Location{
	{3, 15, 27},
	{8, 22},
	{5, 16, 26},
}

var boatLines = [][]Location{
	{6, 25},
}

var boardCorners = []Location{1, 6, 25, 30}

// StandardReveal is the reveal schedule of the reference board: twelve rounds
// with the evader shown after rounds 3, 8 and 12.
func StandardReveal() []bool {
	reveal := make([]bool, 13)
	reveal[3] = true
	reveal[8] = true
	reveal[12] = true
	return reveal
}

// NewStandardSnapshot sets up a match on the reference board with three
// seekers.
func NewStandardSnapshot() *Snapshot {
	locations := []Location{18, 2, 11, 26}
	tickets := []Tickets{
		NewTickets(4, 3, 3, 3, 2),
		NewTickets(10, 8, 4, 0, 0),
		NewTickets(10, 8, 4, 0, 0),
		NewTickets(10, 8, 4, 0, 0),
	}
	return NewSnapshot(locations, tickets, StandardReveal())
}
