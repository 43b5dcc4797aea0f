package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type TestOutput struct {
	Name         string
	Version      string
	Capabilities []string
	Delivered    bool
}

type EventInput struct {
	Kind       string
	Minutes    uint64
	Note       string
	LogPath    string
	OccurredAt string
}

type DeliveryOutput struct {
	Plugin    string
	Delivered bool
	Error     string
}
