package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	DeviceHandler *DeviceHandler
	FileHandler   *FileHandler
}
