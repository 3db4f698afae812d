package controller

import (
	"fmt"
	"strconv"
	"strings"

	"cafe-api/model"
)

// cafeColumns is the field order shared by the add form and the spreadsheet
// import/export.
var cafeColumns = []string{
	"name", "map_url", "img_url", "location", "seats",
	"has_toilet", "has_wifi", "has_sockets", "can_take_calls",
	"coffee_price",
}

type cafeInput struct {
	Name         string  `form:"name"`
	MapURL       string  `form:"map_url"`
	ImgURL       string  `form:"img_url"`
	Location     string  `form:"location"`
	Seats        string  `form:"seats"`
	HasToilet    string  `form:"has_toilet"`
	HasWifi      string  `form:"has_wifi"`
	HasSockets   string  `form:"has_sockets"`
	CanTakeCalls string  `form:"can_take_calls"`
	CoffeePrice  *string `form:"coffee_price"`
}

func cafeInputFromRow(header map[string]int, row []string) cafeInput {
	cell := func(col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	in := cafeInput{
		Name:         cell("name"),
		MapURL:       cell("map_url"),
		ImgURL:       cell("img_url"),
		Location:     cell("location"),
		Seats:        cell("seats"),
		HasToilet:    cell("has_toilet"),
		HasWifi:      cell("has_wifi"),
		HasSockets:   cell("has_sockets"),
		CanTakeCalls: cell("can_take_calls"),
	}
	if price := cell("coffee_price"); price != "" {
		in.CoffeePrice = &price
	}
	return in
}

// toCafe validates required fields and parses the amenity flags strictly:
// only strconv.ParseBool spellings are accepted, so "false" really is false.
func (in cafeInput) toCafe() (model.Cafe, error) {
	required := []struct{ name, value string }{
		{"name", in.Name},
		{"map_url", in.MapURL},
		{"img_url", in.ImgURL},
		{"location", in.Location},
		{"seats", in.Seats},
		{"has_toilet", in.HasToilet},
		{"has_wifi", in.HasWifi},
		{"has_sockets", in.HasSockets},
		{"can_take_calls", in.CanTakeCalls},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return model.Cafe{}, fmt.Errorf("missing required field: %s", f.name)
		}
	}

	var flags [4]bool
	for i, f := range required[5:] {
		v, err := strconv.ParseBool(strings.TrimSpace(f.value))
		if err != nil {
			return model.Cafe{}, fmt.Errorf("invalid boolean for %s: %q, use true or false", f.name, f.value)
		}
		flags[i] = v
	}

	return model.Cafe{
		Name:         strings.TrimSpace(in.Name),
		MapURL:       in.MapURL,
		ImgURL:       in.ImgURL,
		Location:     strings.TrimSpace(in.Location),
		Seats:        in.Seats,
		HasToilet:    flags[0],
		HasWifi:      flags[1],
		HasSockets:   flags[2],
		CanTakeCalls: flags[3],
		CoffeePrice:  in.CoffeePrice,
	}, nil
}
