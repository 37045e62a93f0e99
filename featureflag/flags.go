package featureflag

type Flag string

const (
	FlagDisableFaceDiscovery     Flag = "DISABLE_FACE_DISCOVERY"
	FlagDisableVisibilityGraph   Flag = "DISABLE_VISIBILITY_GRAPH"
	FlagDisableVisibilityPruning Flag = "DISABLE_VISIBILITY_PRUNING"
)
