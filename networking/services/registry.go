package services

type Registry struct {
	Services map[string]interface{}
}

func NewRegistry() *Registry {
	return &Registry{Services: map[string]interface{}{}}
}

func (r *Registry) AddService(name string, service interface{}) {
	r.Services[name] = service
}

// NewWorkerRegistry lists the services workers call. Clients never run the handlers.
func NewWorkerRegistry() *Registry {
	registry := NewRegistry()
	registry.AddService(StatsService, NewStats(nil))
	registry.AddService(LoggingService, NewLogging(nil))
	return registry
}
