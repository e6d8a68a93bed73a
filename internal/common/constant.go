package common

// AuthHeaderName is the HTTP header that carries the bearer access token.
const AuthHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "
