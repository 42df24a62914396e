package services

// ServiceContainer holds all application services.
type ServiceContainer struct {
	FeedService   FeedService
	ActionService ActionService
	MatchService  MatchService
	ChatService   ChatService
}
