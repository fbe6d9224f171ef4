package handler

import (
	"net/http"

	"pdf-toolbox/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Initialize handlers
	ocrHandler := NewOCRHandler(container.Intake, container.Extractor, container.Store, container.Logger)
	pdfHandler := NewPDFHandler(container.Intake, container.PDFOps, container.Store, container.Logger)
	convertHandler := NewConvertHandler(container.Intake, container.Converter, container.Store, container.Logger)
	protectHandler := NewProtectHandler(container.Intake, container.Protector, container.Store, container.Logger)
	downloadHandler := NewDownloadHandler(container.Store, container.Logger)

	router.Use(RequestLogger(container.Logger))

	// OCR text extraction
	router.HandleFunc("/upload", ocrHandler.ExtractText).Methods("POST")

	// PDF operations
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/merged-pdfs", pdfHandler.ListMerged).Methods("GET")
	api.HandleFunc("/merge-pdfs", pdfHandler.MergePDFs).Methods("POST")
	api.HandleFunc("/split-pdf", pdfHandler.SplitPDF).Methods("POST")
	api.HandleFunc("/compress-pdf", pdfHandler.CompressPDF).Methods("POST")
	api.HandleFunc("/image-to-pdf", convertHandler.ImageToPDF).Methods("POST")
	api.HandleFunc("/pdf-to-image", convertHandler.PDFToImage).Methods("POST")
	api.HandleFunc("/protect-pdf", protectHandler.ProtectPDF).Methods("POST")
	api.HandleFunc("/unprotect-pdf", protectHandler.UnprotectPDF).Methods("POST")
	api.HandleFunc("/download", downloadHandler.Download).Methods("GET")

	// Compatibility alias for older clients
	router.HandleFunc("/download", downloadHandler.Download).Methods("GET")

	// Static serving of retained artifacts
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", downloadHandler.ServeUploads()))

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: container.Config.GetAllowedOrigins(),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
