package met

import (
	"context"
	"sort"
)

// Department is one entry of the museum's department enumeration.
type Department struct {
	ID   int    `json:"departmentId"`
	Name string `json:"displayName"`
}

// departments is the built-in table, matching the collection API's
// /departments response. Used when the caller does not refresh from the API.
var departments = []Department{
	{1, "American Decorative Arts"},
	{3, "Ancient Near Eastern Art"},
	{4, "Arms and Armor"},
	{5, "Arts of Africa, Oceania, and the Americas"},
	{6, "Asian Art"},
	{7, "The Cloisters"},
	{8, "The Costume Institute"},
	{9, "Drawings and Prints"},
	{10, "Egyptian Art"},
	{11, "European Paintings"},
	{12, "European Sculpture and Decorative Arts"},
	{13, "Greek and Roman Art"},
	{14, "Islamic Art"},
	{15, "The Robert Lehman Collection"},
	{16, "The Libraries"},
	{17, "Medieval Art"},
	{18, "Musical Instruments"},
	{19, "Photographs"},
	{21, "Modern Art"},
}

// classifications is the subset of object classifications the search UI
// offers. The upstream vocabulary is larger; these are the ones worth
// constraining a search by.
var classifications = []string{
	"Ceramics",
	"Codices",
	"Drawings",
	"Glass",
	"Jewelry",
	"Metalwork",
	"Paintings",
	"Photographs",
	"Prints",
	"Sculpture",
	"Textiles",
	"Vases",
}

// Departments returns the department enumeration, id ascending.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// DepartmentID resolves a display name to its department code. The second
// return is false when the name is not in the enumeration.
func DepartmentID(name string) (int, bool) {
	for _, d := range departments {
		if d.Name == name {
			return d.ID, true
		}
	}
	return 0, false
}

// geoLocations is the subset of geographic locations the search UI offers.
// The API matches against geography fields; these are the common values.
var geoLocations = []string{
	"Africa",
	"China",
	"Egypt",
	"England",
	"Europe",
	"France",
	"Greece",
	"India",
	"Italy",
	"Japan",
	"New York",
	"Paris",
	"Rome",
	"Spain",
}

// Classifications returns the classification enumeration, sorted.
func Classifications() []string {
	out := make([]string, len(classifications))
	copy(out, classifications)
	sort.Strings(out)
	return out
}

// GeoLocations returns the geographic-location enumeration, sorted.
func GeoLocations() []string {
	out := make([]string, len(geoLocations))
	copy(out, geoLocations)
	sort.Strings(out)
	return out
}

// FetchDepartments retrieves the live department list from the API.
func (c *Client) FetchDepartments(ctx context.Context) ([]Department, error) {
	var resp struct {
		Departments []Department `json:"departments"`
	}
	if err := c.getJSON(ctx, c.url("departments"), &resp); err != nil {
		return nil, err
	}
	sort.Slice(resp.Departments, func(i, j int) bool {
		return resp.Departments[i].ID < resp.Departments[j].ID
	})
	return resp.Departments, nil
}
