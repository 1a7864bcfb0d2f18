package routes

// Routes package cung cấp tất cả routing functions cho Japan Postal Code Service
//
// Cấu trúc:
// - api.go: API routes (/v1/*)
// - web.go: Web routes (/, /docs, /status)
// - routes.go: Export functions
//
// Sử dụng:
// routes.SetupAllRoutes(router, postalController, adminController)
