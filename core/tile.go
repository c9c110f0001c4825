package core

// Faces flags which sides of a tile are collidable
// A face is solid only when the neighbor in that direction is not solid
type Faces struct {
	N, S, E, W bool
}

// Tile is a static map cell as seen by the collision core
type Tile struct {
	Region Region
	Solid  bool
	Faces  Faces
}
