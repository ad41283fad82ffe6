package docs

// @title           Toll Operations Dashboard Gateway API
// @version         1.0
// @description     Server-side gateway for the toll operator dashboard. Handles operator sessions against the toll backend, serves the aggregated traffic reports and the gate master data, and exports the daily report.

// @contact.name   API Support

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name jasamarga_token
// @description Session token issued by the toll backend on login.
