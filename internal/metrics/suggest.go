package metrics

import (
	"slices"

	"github.com/rileyhilliard/stordash/internal/device"
	"github.com/rileyhilliard/stordash/internal/table"
)

// Suggestion is one area where a device falls short, with what to do
// about it.
type Suggestion struct {
	Area string
	// Key is the metric behind the area. Empty for capability checks and
	// for the general suggestion returned when nothing falls short.
	Key             string
	Value           float64
	Baseline        float64
	Recommendations []string
}

type suggestionRule struct {
	area string
	// key and reference describe a metric rule: the device falls short
	// when it is worse than the collection mean, or reference without one.
	key       string
	reference float64
	// lacks describes a capability rule.
	lacks func(f device.Features) bool
	recs  []string
}

var suggestionRules = map[device.Category][]suggestionRule{
	device.CategoryOverview: {
		{area: "Overall Device Performance", key: "deviceScore", reference: 85, recs: []string{
			"Consider upgrading to a higher-tier storage solution",
			"Optimize storage configuration for better performance",
			"Review current workload requirements and match with appropriate device tier",
		}},
		{area: "Performance Score", key: "score", reference: 82, recs: []string{
			"Implement HPE performance optimization best practices",
			"Enable HPE Smart Array features for better throughput",
			"Consider HPE Primera or Alletra series for higher performance",
			"Optimize data placement and tiering strategies",
		}},
		{area: "Environmental Efficiency", key: "greenScore", reference: 78, recs: []string{
			"Enable power management features",
			"Implement data deduplication to reduce storage footprint",
			"Consider HPE GreenLake consumption-based model",
			"Optimize cooling and power consumption settings",
		}},
		{area: "Feature Utilization", key: "featureScore", reference: 80, recs: []string{
			"Enable advanced HPE storage features like snapshots and replication",
			"Implement automated data tiering",
			"Utilize HPE InfoSight for predictive analytics",
			"Consider upgrading to enterprise features for better functionality",
		}},
	},
	device.CategorySustainability: {
		{area: "Overall Environmental Impact", key: "greenScore", reference: 78, recs: []string{
			"Implement comprehensive energy management policies",
			"Consider upgrading to more energy-efficient storage solutions",
			"Establish green data center practices and monitoring",
			"Participate in renewable energy programs for your data center",
		}},
		{area: "Power Efficiency Optimization", key: "sustainability.powerEfficiency", reference: 75, recs: []string{
			"Enable advanced power management features on your storage systems",
			"Implement automated tiering to move inactive data to lower-power storage",
			"Optimize cooling systems to reduce overall power consumption",
			"Use data deduplication and compression to reduce storage requirements",
		}},
		{area: "Carbon Footprint Reduction", key: "sustainability.carbonReduction", reference: 65, recs: []string{
			"Implement data lifecycle management to reduce unnecessary storage",
			"Enable thin provisioning to minimize physical storage requirements",
			"Consider cloud-hybrid approaches with renewable energy providers",
			"Use HPE GreenLake's consumption-based model to optimize resource usage",
		}},
		{area: "Circular Economy Practices", key: "sustainability.circularEconomy", reference: 70, recs: []string{
			"Participate in HPE's equipment take-back and recycling programs",
			"Implement asset lifecycle management for responsible disposal",
			"Consider refurbished or remanufactured equipment options",
			"Plan for equipment refresh cycles that maximize reuse potential",
		}},
	},
	device.CategoryPerformance: {
		{area: "Overall Performance Optimization", key: "score", reference: 82, recs: []string{
			"Upgrade to higher performance storage tiers (Primera or Alletra series)",
			"Implement intelligent data tiering for optimal performance",
			"Optimize workload placement based on IOPS requirements",
			"Consider NVMe storage for latency-sensitive applications",
		}},
		{area: "Read Performance Enhancement", key: "readSpeed", reference: 2500, recs: []string{
			"Enable read-ahead caching for sequential workloads",
			"Implement SSD caching layers for frequently accessed data",
			"Optimize RAID configurations for read-intensive applications",
		}},
		{area: "Write Performance Enhancement", key: "writeSpeed", reference: 2200, recs: []string{
			"Enable write-back caching with battery backup",
			"Implement write coalescing for small random writes",
			"Use write-optimized RAID configurations",
		}},
		{area: "IOPS Optimization", key: "iops", reference: 85000, recs: []string{
			"Implement queue depth optimization for your applications",
			"Enable multi-path I/O for load distribution",
			"Optimize block sizes for your specific workload patterns",
		}},
		{area: "Latency Reduction", key: "latency", reference: 2.5, recs: []string{
			"Move critical data to faster storage tiers",
			"Implement storage-level caching for hot data",
			"Optimize network configuration to reduce I/O path latency",
		}},
		{area: "Throughput Optimization", key: "throughput", reference: 4500, recs: []string{
			"Increase connection bandwidth between hosts and storage",
			"Optimize stripe sizes for large sequential operations",
			"Consider storage aggregation and load balancing",
		}},
	},
	device.CategoryFeatures: {
		{area: "Overall Feature Enhancement", key: "featureScore", reference: 80, recs: []string{
			"Enable advanced HPE storage features like InfoSight analytics",
			"Implement automated data management and tiering",
			"Explore enterprise-grade replication and backup capabilities",
		}},
		{area: "Data Management Optimization", lacks: func(f device.Features) bool {
			return f.DataManagement.Deduplication != "Advanced" || f.DataManagement.Compression != "Advanced"
		}, recs: []string{
			"Enable advanced deduplication to reduce storage footprint",
			"Implement inline compression for better capacity utilization",
			"Configure thin provisioning to maximize efficiency",
		}},
		{area: "Security Enhancement", lacks: func(f device.Features) bool {
			return f.Security.Encryption != "AES-256" || !slices.Contains(f.Security.AccessControl, "RBAC")
		}, recs: []string{
			"Enable AES-256 encryption for data at rest and in transit",
			"Implement Role-Based Access Control (RBAC) for user management",
			"Enable audit logging and compliance reporting",
		}},
		{area: "High Availability Setup", lacks: func(f device.Features) bool {
			return !slices.Contains(f.Availability, "Auto-failover") || !slices.Contains(f.Availability, "Hot-spare")
		}, recs: []string{
			"Configure automatic failover for business continuity",
			"Set up hot-spare drives for immediate recovery",
			"Enable continuous data replication for disaster recovery",
		}},
		{area: "Management and Integration", lacks: func(f device.Features) bool {
			return !slices.Contains(f.Management, "REST API") || !slices.Contains(f.Management, "Cloud Integration")
		}, recs: []string{
			"Enable REST API access for automation and integration",
			"Set up cloud integration for hybrid management",
			"Use infrastructure-as-code for consistent deployments",
		}},
		{area: "Protocol Modernization", lacks: func(f device.Features) bool {
			return !slices.ContainsFunc(f.Protocols, func(p string) bool {
				return slices.Contains(modernProtocols, p)
			})
		}, recs: []string{
			"Upgrade to modern protocols like NVMe over Fabrics",
			"Implement multi-protocol support for flexibility",
			"Consider Ethernet-based storage networking",
		}},
	},
}

var modernProtocols = []string{"NVMe-oF", "iSCSI", "FC", "Ethernet"}

// generalSuggestions are returned when a device falls short nowhere.
var generalSuggestions = map[device.Category]Suggestion{
	device.CategoryOverview: {Area: "Optimization Opportunities", Recommendations: []string{
		"Your device is performing well! Consider monitoring trends for future planning",
		"Implement regular performance monitoring and maintenance",
		"Consider capacity planning for future growth",
	}},
	device.CategorySustainability: {Area: "Sustainability Leadership Opportunities", Recommendations: []string{
		"Excellent sustainability performance! Consider sharing best practices",
		"Investigate advanced green technologies for future implementations",
		"Consider sustainability certifications and reporting standards",
	}},
	device.CategoryPerformance: {Area: "Performance Excellence Opportunities", Recommendations: []string{
		"Outstanding performance! Consider monitoring for capacity planning",
		"Implement automated performance tuning features",
		"Evaluate next-generation storage technologies for future upgrades",
	}},
	device.CategoryFeatures: {Area: "Feature Excellence Opportunities", Recommendations: []string{
		"Excellent feature utilization! Consider advanced use cases",
		"Explore next-generation features like AI-driven optimization",
		"Evaluate emerging technologies for competitive advantage",
	}},
}

// SuggestionBaseline is the value a device is held to for key: the
// collection mean from summary, or reference when there is no summary or
// the mean is zero.
func SuggestionBaseline(summary *Summary, key string, reference float64) float64 {
	if summary != nil {
		if b := Baseline(summary, key); b != 0 {
			return b
		}
	}
	return reference
}

// Suggestions lists the areas of category where r falls short of the
// collection in summary. Metrics the record doesn't carry are skipped.
// When nothing falls short the category's general suggestion is returned,
// so the result is empty only for unknown categories.
func Suggestions(category device.Category, r device.Record, summary *Summary) []Suggestion {
	rules, ok := suggestionRules[category]
	if !ok {
		return nil
	}

	r = Enrich(r)
	fields := table.DefaultFields()
	features := device.Features{}
	if r.Features != nil {
		features = *r.Features
	}
	if len(features.Protocols) == 0 {
		features.Protocols = r.Protocols
	}

	var out []Suggestion
	for _, rule := range rules {
		if rule.lacks != nil {
			if rule.lacks(features) {
				out = append(out, Suggestion{Area: rule.area, Recommendations: rule.recs})
			}
			continue
		}

		v := fields.Get(r, rule.key)
		if v.Kind != table.KindNumber {
			continue
		}
		base := SuggestionBaseline(summary, rule.key, rule.reference)
		short := v.Num < base
		if Inverted(rule.key) {
			short = v.Num > base
		}
		if short {
			out = append(out, Suggestion{
				Area:            rule.area,
				Key:             rule.key,
				Value:           v.Num,
				Baseline:        base,
				Recommendations: rule.recs,
			})
		}
	}

	if len(out) == 0 {
		return []Suggestion{generalSuggestions[category]}
	}
	return out
}
