package device

const (
	catalogType        = "HPE GreenLake For File Storage"
	catalogProductLine = "HPE GreenLake"
	catalogDeployment  = "Cloud-managed"
)

// Catalog returns the built-in device catalog. It backs the offline
// provider, the fallback used when a remote source is unreachable, and the
// demo API server. Each call returns fresh copies.
func Catalog() []Record {
	return CloneAll(catalog)
}

var catalog = []Record{
	{
		ID:             1,
		Name:           "BLR-CZ234402KF",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(98),
		Score:          99,
		GreenScore:     98,
		FeatureScore:   97,
		Capacity:       "100TB",
		ReadSpeed:      3500,
		WriteSpeed:     3200,
		IOPS:           120000,
		Latency:        0.1,
		Throughput:     6800,
		Price:          45000,
		DataReduction:  "6:1",
		Sustainability: &Sustainability{PowerEfficiency: 92, CarbonReduction: 78, CircularEconomy: 85},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC", "MFA"}},
			Availability:   []string{"Auto-failover", "Hot-spare", "RAID"},
			Management:     []string{"REST API", "Cloud Integration", "AI Analytics"},
			Protocols:      []string{"NFS", "SMB", "REST API"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"NFS", "SMB", "REST API"},
	},
	{
		ID:             2,
		Name:           "BLR-CZ234403MX",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(96),
		Score:          98,
		GreenScore:     96,
		FeatureScore:   95,
		Capacity:       "80TB",
		ReadSpeed:      3200,
		WriteSpeed:     2900,
		IOPS:           110000,
		Latency:        0.15,
		Throughput:     6200,
		Price:          38000,
		DataReduction:  "5:1",
		Sustainability: &Sustainability{PowerEfficiency: 89, CarbonReduction: 75, CircularEconomy: 82},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC"}},
			Availability:   []string{"Auto-failover", "Hot-spare"},
			Management:     []string{"REST API", "Cloud Integration"},
			Protocols:      []string{"NFS", "SMB", "iSCSI"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"NFS", "SMB", "iSCSI"},
	},
	{
		ID:             3,
		Name:           "BLR-CZ234404PL",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(94),
		Score:          96,
		GreenScore:     94,
		FeatureScore:   92,
		Capacity:       "60TB",
		ReadSpeed:      2800,
		WriteSpeed:     2500,
		IOPS:           95000,
		Latency:        0.2,
		Throughput:     5400,
		Price:          32000,
		DataReduction:  "4:1",
		Sustainability: &Sustainability{PowerEfficiency: 85, CarbonReduction: 72, CircularEconomy: 78},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Standard", Compression: "Advanced", Tiering: "Manual"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC"}},
			Availability:   []string{"Hot-spare"},
			Management:     []string{"REST API"},
			Protocols:      []string{"NFS", "SMB"},
		},
		Snapshots:   "Yes",
		Replication: "Optional",
		Protocols:   []string{"NFS", "SMB"},
	},
	{
		ID:             4,
		Name:           "BLR-CZ234405RT",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(91),
		Score:          94,
		GreenScore:     92,
		FeatureScore:   88,
		Capacity:       "50TB",
		ReadSpeed:      2400,
		WriteSpeed:     2100,
		IOPS:           80000,
		Latency:        0.25,
		Throughput:     4800,
		Price:          28000,
		DataReduction:  "3:1",
		Sustainability: &Sustainability{PowerEfficiency: 82, CarbonReduction: 68, CircularEconomy: 75},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Standard", Compression: "Standard", Tiering: "Manual"},
			Security:       Security{Encryption: "AES-128", AccessControl: []string{"Basic"}},
			Availability:   []string{"Hot-spare"},
			Management:     []string{"Web UI"},
			Protocols:      []string{"NFS", "SMB"},
		},
		Snapshots:   "Yes",
		Replication: "No",
		Protocols:   []string{"NFS", "SMB"},
	},
	{
		ID:             5,
		Name:           "BLR-CZ234406WH",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(87),
		Score:          87,
		GreenScore:     89,
		FeatureScore:   85,
		Capacity:       "30TB",
		ReadSpeed:      2000,
		WriteSpeed:     1800,
		IOPS:           65000,
		Latency:        0.3,
		Throughput:     3600,
		Price:          24000,
		DataReduction:  "2:1",
		Sustainability: &Sustainability{PowerEfficiency: 78, CarbonReduction: 65, CircularEconomy: 72},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Basic", Compression: "Standard", Tiering: "None"},
			Security:       Security{Encryption: "AES-128", AccessControl: []string{"Basic"}},
			Availability:   []string{"Basic"},
			Management:     []string{"Web UI"},
			Protocols:      []string{"NFS", "SMB"},
		},
		Snapshots:   "Optional",
		Replication: "No",
		Protocols:   []string{"NFS", "SMB"},
	},
	{
		ID:             6,
		Name:           "BLR-CZ234407NQ",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(79),
		Score:          78,
		GreenScore:     84,
		FeatureScore:   75,
		Capacity:       "20TB",
		ReadSpeed:      1600,
		WriteSpeed:     1400,
		IOPS:           50000,
		Latency:        0.4,
		Throughput:     2800,
		Price:          18000,
		DataReduction:  "2:1",
		Sustainability: &Sustainability{PowerEfficiency: 75, CarbonReduction: 62, CircularEconomy: 68},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Basic", Compression: "Basic", Tiering: "None"},
			Security:       Security{Encryption: "Basic", AccessControl: []string{"Basic"}},
			Availability:   []string{"Basic"},
			Management:     []string{"Web UI"},
			Protocols:      []string{"NFS"},
		},
		Snapshots:   "No",
		Replication: "No",
		Protocols:   []string{"NFS"},
	},
	{
		ID:             7,
		Name:           "BLR-CZ234408LK",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(78),
		Score:          80,
		GreenScore:     76,
		FeatureScore:   74,
		Capacity:       "24TB",
		ReadSpeed:      1800,
		WriteSpeed:     1600,
		IOPS:           45000,
		Latency:        0.8,
		Throughput:     3400,
		Price:          18000,
		DataReduction:  "3:1",
		Sustainability: &Sustainability{PowerEfficiency: 68, CarbonReduction: 58, CircularEconomy: 65},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Basic", Compression: "Standard", Tiering: "None"},
			Security:       Security{Encryption: "Basic", AccessControl: []string{"Basic"}},
			Availability:   []string{"Basic"},
			Management:     []string{"Web UI", "SNMP"},
			Protocols:      []string{"SMB", "NFS"},
		},
		Snapshots:   "Limited",
		Replication: "No",
		Protocols:   []string{"SMB", "NFS"},
	},
	{
		ID:             8,
		Name:           "BLR-CZ234409VB",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(88),
		Score:          90,
		GreenScore:     86,
		FeatureScore:   84,
		Capacity:       "45TB",
		ReadSpeed:      2400,
		WriteSpeed:     2100,
		IOPS:           75000,
		Latency:        0.4,
		Throughput:     4500,
		Price:          28000,
		DataReduction:  "5:1",
		Sustainability: &Sustainability{PowerEfficiency: 78, CarbonReduction: 68, CircularEconomy: 74},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC"}},
			Availability:   []string{"Hot-spare", "RAID"},
			Management:     []string{"REST API", "Web UI"},
			Protocols:      []string{"iSCSI", "FC", "NFS"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"iSCSI", "FC", "NFS"},
	},
	{
		ID:             9,
		Name:           "BLR-CZ234410DH",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(95),
		Score:          97,
		GreenScore:     93,
		FeatureScore:   91,
		Capacity:       "75TB",
		ReadSpeed:      3100,
		WriteSpeed:     2800,
		IOPS:           105000,
		Latency:        0.12,
		Throughput:     5900,
		Price:          42000,
		DataReduction:  "6:1",
		Sustainability: &Sustainability{PowerEfficiency: 88, CarbonReduction: 73, CircularEconomy: 81},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC", "MFA"}},
			Availability:   []string{"Auto-failover", "Hot-spare", "RAID"},
			Management:     []string{"REST API", "Cloud Integration"},
			Protocols:      []string{"iSCSI", "FC"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"iSCSI", "FC"},
	},
	{
		ID:             10,
		Name:           "BLR-CZ234411FG",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(82),
		Score:          84,
		GreenScore:     80,
		FeatureScore:   78,
		Capacity:       "32TB",
		ReadSpeed:      2200,
		WriteSpeed:     1900,
		IOPS:           65000,
		Latency:        0.5,
		Throughput:     4100,
		Price:          22000,
		DataReduction:  "3:1",
		Sustainability: &Sustainability{PowerEfficiency: 72, CarbonReduction: 62, CircularEconomy: 69},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Standard", Compression: "Standard", Tiering: "Manual"},
			Security:       Security{Encryption: "AES-128", AccessControl: []string{"Basic"}},
			Availability:   []string{"Hot-spare", "RAID"},
			Management:     []string{"Web UI", "CLI"},
			Protocols:      []string{"iSCSI", "FC"},
		},
		Snapshots:   "Yes",
		Replication: "Limited",
		Protocols:   []string{"iSCSI", "FC"},
	},
	{
		ID:             11,
		Name:           "BLR-CZ234412JY",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(86),
		Score:          88,
		GreenScore:     84,
		FeatureScore:   82,
		Capacity:       "96TB",
		ReadSpeed:      2600,
		WriteSpeed:     2300,
		IOPS:           55000,
		Latency:        0.6,
		Throughput:     4900,
		Price:          35000,
		DataReduction:  "4:1",
		Sustainability: &Sustainability{PowerEfficiency: 80, CarbonReduction: 70, CircularEconomy: 76},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC"}},
			Availability:   []string{"Redundancy", "Hot-spare"},
			Management:     []string{"REST API", "Web UI"},
			Protocols:      []string{"NFS", "CIFS", "VTL"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"NFS", "CIFS", "VTL"},
	},
	{
		ID:             12,
		Name:           "BLR-CZ234413QW",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(92),
		Score:          94,
		GreenScore:     90,
		FeatureScore:   88,
		Capacity:       "40TB",
		ReadSpeed:      2900,
		WriteSpeed:     2600,
		IOPS:           85000,
		Latency:        0.3,
		Throughput:     5500,
		Price:          38000,
		DataReduction:  "5:1",
		Sustainability: &Sustainability{PowerEfficiency: 84, CarbonReduction: 74, CircularEconomy: 79},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC"}},
			Availability:   []string{"Auto-failover", "Triple-parity"},
			Management:     []string{"REST API", "Cloud Integration", "AI Analytics"},
			Protocols:      []string{"iSCSI", "FC"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"iSCSI", "FC"},
	},
	{
		ID:             13,
		Name:           "BLR-CZ234414ER",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(79),
		Score:          81,
		GreenScore:     77,
		FeatureScore:   75,
		Capacity:       "50TB",
		ReadSpeed:      2000,
		WriteSpeed:     1700,
		IOPS:           50000,
		Latency:        0.7,
		Throughput:     3700,
		Price:          25000,
		DataReduction:  "3:1",
		Sustainability: &Sustainability{PowerEfficiency: 70, CarbonReduction: 60, CircularEconomy: 67},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Standard", Compression: "Standard", Tiering: "Manual"},
			Security:       Security{Encryption: "AES-128", AccessControl: []string{"Basic"}},
			Availability:   []string{"Network RAID", "Hot-spare"},
			Management:     []string{"Web UI", "CLI"},
			Protocols:      []string{"iSCSI"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"iSCSI"},
	},
	{
		ID:             14,
		Name:           "BLR-CZ234415TU",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(97),
		Score:          99,
		GreenScore:     95,
		FeatureScore:   93,
		Capacity:       "120TB",
		ReadSpeed:      3400,
		WriteSpeed:     3100,
		IOPS:           115000,
		Latency:        0.08,
		Throughput:     6500,
		Price:          55000,
		DataReduction:  "7:1",
		Sustainability: &Sustainability{PowerEfficiency: 90, CarbonReduction: 76, CircularEconomy: 83},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC", "MFA", "LDAP"}},
			Availability:   []string{"Auto-failover", "Hot-spare", "RAID", "Multi-site"},
			Management:     []string{"REST API", "Cloud Integration", "AI Analytics", "SSMC"},
			Protocols:      []string{"FC", "iSCSI", "FCoE"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"FC", "iSCSI", "FCoE"},
	},
	{
		ID:             15,
		Name:           "BLR-CZ234416IO",
		Type:           catalogType,
		ProductLine:    catalogProductLine,
		Deployment:     catalogDeployment,
		DeviceScore:    IntPtr(91),
		Score:          93,
		GreenScore:     89,
		FeatureScore:   87,
		Capacity:       "65TB",
		ReadSpeed:      2700,
		WriteSpeed:     2400,
		IOPS:           80000,
		Latency:        0.25,
		Throughput:     5100,
		Price:          45000,
		DataReduction:  "5:1",
		Sustainability: &Sustainability{PowerEfficiency: 82, CarbonReduction: 72, CircularEconomy: 78},
		Features: &Features{
			DataManagement: DataManagement{Deduplication: "Advanced", Compression: "Advanced", Tiering: "Automated"},
			Security:       Security{Encryption: "AES-256", AccessControl: []string{"RBAC", "MFA"}},
			Availability:   []string{"HA", "DRS", "Hot-spare"},
			Management:     []string{"vCenter Integration", "REST API", "Cloud Integration"},
			Protocols:      []string{"NFS", "iSCSI", "vSAN"},
		},
		Snapshots:   "Yes",
		Replication: "Yes",
		Protocols:   []string{"NFS", "iSCSI", "vSAN"},
	},
}
