// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic   SecurityLevel = iota // No authentication
	SecurityVerified                      // Verified bearer identity required
)

// Route names registered by the HTTP router.
const (
	RouteWelcome        = "Welcome"
	RouteHealth         = "Health"
	RouteListCategories = "ListCategories"
	RouteListBooks      = "ListBooks"
	RouteGetBook        = "GetBook"
	RouteCreateBook     = "CreateBook"
	RouteUpdateBook     = "UpdateBook"
	RouteBorrowBook     = "BorrowBook"
	RouteListBorrowed   = "ListBorrowed"
	RouteReturnBook     = "ReturnBook"
)

// EndpointSecurityConfig maps route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	RouteWelcome:        SecurityPublic,
	RouteHealth:         SecurityPublic,
	RouteListCategories: SecurityPublic,
	RouteListBooks:      SecurityPublic,
	RouteGetBook:        SecurityPublic,
	RouteCreateBook:     SecurityPublic,
	RouteUpdateBook:     SecurityPublic,
	RouteBorrowBook:     SecurityPublic,
	RouteReturnBook:     SecurityPublic,

	RouteListBorrowed: SecurityVerified,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown routes
	return SecurityVerified
}
