package model

type Amenities struct {
	HasToilet    bool `json:"has_toilet"`
	HasWifi      bool `json:"has_wifi"`
	HasSockets   bool `json:"has_sockets"`
	CanTakeCalls bool `json:"can_take_calls"`
}

// CafeResponse is the wire shape of a cafe: flat fields plus grouped amenities.
type CafeResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	MapURL      string    `json:"map_url"`
	ImgURL      string    `json:"img_url"`
	Location    string    `json:"location"`
	Seats       string    `json:"seats"`
	Amenities   Amenities `json:"amenities"`
	CoffeePrice *string   `json:"coffee_price"`
}

func NewCafeResponse(c Cafe) CafeResponse {
	return CafeResponse{
		ID:       c.ID,
		Name:     c.Name,
		MapURL:   c.MapURL,
		ImgURL:   c.ImgURL,
		Location: c.Location,
		Seats:    c.Seats,
		Amenities: Amenities{
			HasToilet:    c.HasToilet,
			HasWifi:      c.HasWifi,
			HasSockets:   c.HasSockets,
			CanTakeCalls: c.CanTakeCalls,
		},
		CoffeePrice: c.CoffeePrice,
	}
}

func NewCafeResponses(cafes []Cafe) []CafeResponse {
	out := make([]CafeResponse, 0, len(cafes))
	for _, c := range cafes {
		out = append(out, NewCafeResponse(c))
	}
	return out
}
