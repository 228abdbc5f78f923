package meander

// Version is the library version. Release builds override it via
// -ldflags "-X github.com/aretw0/meander.Version=v...".
var Version = "0.1.0-dev"
