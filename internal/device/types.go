package device

import "fmt"

// Record is one storage product as supplied by a data provider.
// Records are value data: enrichment returns a new Record rather than
// modifying the one it was given.
type Record struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	ProductLine string `json:"productLine,omitempty"`
	Tier        string `json:"tier,omitempty"`
	Deployment  string `json:"deployment,omitempty"`

	// Performance metrics
	ReadSpeed  float64 `json:"readSpeed"`  // MB/s
	WriteSpeed float64 `json:"writeSpeed"` // MB/s
	IOPS       float64 `json:"iops"`
	Latency    float64 `json:"latency"`    // ms
	Throughput float64 `json:"throughput"` // MB/s

	// Derived scores, 0-100. Score is the performance score.
	Score        float64 `json:"score"`
	GreenScore   float64 `json:"greenScore"`
	FeatureScore float64 `json:"featureScore"`
	DeviceScore  *int    `json:"deviceScore,omitempty"` // nil when the provider didn't supply one

	Sustainability *Sustainability `json:"sustainability,omitempty"`
	Features       *Features       `json:"features,omitempty"`

	Price         float64  `json:"price"`
	Capacity      string   `json:"capacity,omitempty"`      // e.g. "100TB"
	DataReduction string   `json:"dataReduction,omitempty"` // e.g. "6:1"
	Snapshots     string   `json:"snapshots,omitempty"`
	Replication   string   `json:"replication,omitempty"`
	Protocols     []string `json:"protocols,omitempty"`
}

// Sustainability groups the green metrics of a device.
type Sustainability struct {
	PowerEfficiency float64 `json:"powerEfficiency"`
	CarbonReduction float64 `json:"carbonReduction"`
	CircularEconomy float64 `json:"circularEconomy"`
}

// Features groups the capability descriptors of a device.
type Features struct {
	DataManagement DataManagement `json:"dataManagement"`
	Security       Security       `json:"security"`
	Availability   []string       `json:"availability,omitempty"`
	Management     []string       `json:"management,omitempty"`
	Protocols      []string       `json:"protocols,omitempty"`
}

// DataManagement holds data-reduction and placement settings.
type DataManagement struct {
	Deduplication string `json:"deduplication,omitempty"`
	Compression   string `json:"compression,omitempty"`
	Tiering       string `json:"tiering,omitempty"`
}

// Security holds encryption and access-control settings.
type Security struct {
	Encryption    string   `json:"encryption,omitempty"`
	AccessControl []string `json:"accessControl,omitempty"`
}

// Category identifies which table a collection of records feeds.
type Category string

const (
	CategoryOverview       Category = "overview"
	CategorySustainability Category = "sustainability"
	CategoryPerformance    Category = "performance"
	CategoryFeatures       Category = "features"
)

// Categories lists every table category in display order.
var Categories = []Category{
	CategoryOverview,
	CategorySustainability,
	CategoryPerformance,
	CategoryFeatures,
}

// Title returns the table heading for the category.
func (c Category) Title() string {
	switch c {
	case CategoryOverview:
		return "Overview"
	case CategorySustainability:
		return "Sustainability"
	case CategoryPerformance:
		return "Performance"
	case CategoryFeatures:
		return "Features"
	default:
		return string(c)
	}
}

// ParseCategory converts a user-supplied name to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown table %q (want overview, sustainability, performance or features)", s)
}

// HasDeviceScore reports whether the provider supplied a device score.
func (r Record) HasDeviceScore() bool {
	return r.DeviceScore != nil
}

// DeviceScoreValue returns the device score, or 0 when absent.
func (r Record) DeviceScoreValue() int {
	if r.DeviceScore == nil {
		return 0
	}
	return *r.DeviceScore
}

// ProtocolCount returns the number of supported access protocols,
// preferring the feature group's list.
func (r Record) ProtocolCount() int {
	if r.Features != nil && len(r.Features.Protocols) > 0 {
		return len(r.Features.Protocols)
	}
	return len(r.Protocols)
}

type namedScore struct {
	name  string
	value float64
}

// Validate reports the first invariant the record violates, or nil.
// Providers use it to flag suspicious upstream rows; records are never
// dropped because of it.
func (r Record) Validate() error {
	scores := []namedScore{
		{"score", r.Score},
		{"greenScore", r.GreenScore},
		{"featureScore", r.FeatureScore},
	}
	if r.Sustainability != nil {
		scores = append(scores,
			namedScore{"sustainability.powerEfficiency", r.Sustainability.PowerEfficiency},
			namedScore{"sustainability.circularEconomy", r.Sustainability.CircularEconomy},
		)
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("device %d: %s %.2f outside [0,100]", r.ID, s.name, s.value)
		}
	}
	if r.DeviceScore != nil && (*r.DeviceScore < 0 || *r.DeviceScore > 100) {
		return fmt.Errorf("device %d: deviceScore %d outside [0,100]", r.ID, *r.DeviceScore)
	}
	if r.Latency < 0 {
		return fmt.Errorf("device %d: negative latency %.2f", r.ID, r.Latency)
	}
	return nil
}

// IntPtr returns a pointer to v. Handy for building records with a
// supplied device score.
func IntPtr(v int) *int {
	return &v
}
