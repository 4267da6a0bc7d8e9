package domain

// ClusterInfo is display metadata for one cluster, produced fresh per
// status query.
type ClusterInfo struct {
	Name    string
	Status  string
	Version string
}
