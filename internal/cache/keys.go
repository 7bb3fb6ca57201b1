package cache

// Resource keys shared by every consumer of the cache. Using the same key
// string everywhere is what makes two views of the same data observe the
// same cached value.
const (
	KeyTasks           = "tasks"
	KeyClients         = "clients"
	KeyLifecycleStages = "lifecycleStages"
	KeyOwners          = "owners"
)
