package scene2d

// Scene2D is the complete top-down scene output for the dev-server preview
// renderer. Placements are reduced to 2D markers; the terrain is carried as a
// coarse height grid suitable for contour shading.
type Scene2D struct {
	Metadata   Metadata       `json:"metadata"`
	Terrain    TerrainSummary `json:"terrain"`
	Markers    []Marker       `json:"markers"`
	Exclusions Exclusions     `json:"exclusions"`
	POIs       [][2]float64   `json:"points_of_interest,omitempty"`
	Categories []CategoryRow  `json:"categories"`
}

// Metadata holds run-level summary data.
type Metadata struct {
	Name        string  `json:"name"`
	Seed        int64   `json:"seed"`
	SizeX       float64 `json:"size_x"`
	SizeZ       float64 `json:"size_z"`
	TotalPlaced int     `json:"total_placed"`
	GeneratedAt string  `json:"generated_at"`
}

// TerrainSummary is a downsampled height grid with the value range the
// renderer needs for color mapping.
type TerrainSummary struct {
	Cols        int         `json:"cols"`
	Rows        int         `json:"rows"`
	CellSize    float64     `json:"cell_size"`
	MinHeight   float64     `json:"min_height"`
	MaxHeight   float64     `json:"max_height"`
	WaterHeight float64     `json:"water_height"`
	Heights     [][]float64 `json:"heights"` // row-major, Rows x Cols
}

// Marker is one placed object in the top-down view.
type Marker struct {
	ID       string     `json:"id"`
	Category string     `json:"category"`
	Profile  string     `json:"profile"`
	Position [2]float64 `json:"position"`
	Radius   float64    `json:"radius"` // footprint radius at the placed scale
	Cluster  int        `json:"cluster,omitempty"`
}

// Exclusions carries keep-out geometry for overlay rendering.
type Exclusions struct {
	Circles  []Circle2D     `json:"circles,omitempty"`
	Polygons [][][2]float64 `json:"polygons,omitempty"`
}

// Circle2D is a circular keep-out zone.
type Circle2D struct {
	Center [2]float64 `json:"center"`
	Radius float64    `json:"radius"`
}

// CategoryRow is one line of the preview's placement summary table.
type CategoryRow struct {
	Category string `json:"category"`
	Target   int    `json:"target"`
	Placed   int    `json:"placed"`
}
