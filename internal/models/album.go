package models

// Lo que está en Mongo para el catálogo de vinilos.
type AlbumDoc struct {
	AlbumID   int     `json:"albumId" bson:"albumId"`
	Title     string  `json:"title" bson:"title"`
	Artist    string  `json:"artist" bson:"artist"`
	Genre     string  `json:"genre,omitempty" bson:"genre,omitempty"`
	Year      int     `json:"year,omitempty" bson:"year,omitempty"`
	Price     float64 `json:"price" bson:"price"`
	Stock     int     `json:"stock" bson:"stock"`
	CreatedAt string  `json:"createdAt" bson:"createdAt"`
	UpdatedAt string  `json:"updatedAt" bson:"updatedAt"`
}

// TopAlbum es una fila del ranking de más vendidos (agregación sobre orders).
type TopAlbum struct {
	Title    string `json:"title" bson:"_id"`
	Quantity int    `json:"quantity" bson:"quantity"`
	Orders   int    `json:"orders" bson:"orders"`
}
