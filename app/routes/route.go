package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/spiceroute/backoffice/app/handlers"
	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/middlewares"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/storage"
	"github.com/spiceroute/backoffice/app/utils/sessions"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

// NewRouter wires repositories, handlers, and middleware into the HTTP
// surface. The method-override middleware wraps the whole router so the
// rewritten method is in place before route matching happens.
func NewRouter(db *gorm.DB, sessionStore sessions.SessionStore, store storage.FileStore, storageRoot string) http.Handler {
	rnd := render.New()
	v := helpers.NewValidator()

	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	productImageRepo := repositories.NewProductImageRepository(db)
	postRepo := repositories.NewPostRepository(db)
	postImageRepo := repositories.NewPostImageRepository(db)
	applicantRepo := repositories.NewApplicantRepository(db)
	badgeRepo := repositories.NewCertificateBadgeRepository(db)
	enquiryRepo := repositories.NewEnquiryRepository(db)
	userRepo := repositories.NewUserRepository(db)

	categoryHandler := handlers.NewCategoryHandler(rnd, categoryRepo, store, v)
	productHandler := handlers.NewProductHandler(rnd, productRepo, categoryRepo, productImageRepo, store, v)
	productImageHandler := handlers.NewAttachmentHandler(rnd, productImageRepo, store, "product_images", "Product")
	postHandler := handlers.NewPostHandler(rnd, postRepo, postImageRepo, store, v)
	postImageHandler := handlers.NewAttachmentHandler(rnd, postImageRepo, store, "post_images", "Post")
	applicantHandler := handlers.NewApplicantHandler(rnd, applicantRepo, store, v)
	badgeHandler := handlers.NewCertificateBadgeHandler(rnd, badgeRepo, store, v)
	enquiryHandler := handlers.NewEnquiryHandler(rnd, enquiryRepo, v)
	authHandler := handlers.NewAuthHandler(rnd, userRepo, sessionStore)

	router := mux.NewRouter()

	router.HandleFunc("/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	router.HandleFunc("/api/products", productHandler.PublicList).Methods("GET")
	router.HandleFunc("/api/enquiries", enquiryHandler.Create).Methods("POST")

	router.PathPrefix("/storage/").Handler(
		http.StripPrefix("/storage/", http.FileServer(http.Dir(storageRoot))))

	data := router.PathPrefix("/data").Subrouter()
	data.Use(middlewares.RequireAuth(sessionStore, userRepo, rnd))

	resource := func(path string, list, show, create, update, destroy http.HandlerFunc) {
		data.HandleFunc(path, list).Methods("GET")
		data.HandleFunc(path, create).Methods("POST")
		data.HandleFunc(path+"/{id}", show).Methods("GET")
		data.HandleFunc(path+"/{id}", update).Methods("PUT", "PATCH")
		data.HandleFunc(path+"/{id}", destroy).Methods("DELETE")
	}

	resource("/categories", categoryHandler.List, categoryHandler.Show, categoryHandler.Create, categoryHandler.Update, categoryHandler.Delete)
	resource("/products", productHandler.List, productHandler.Show, productHandler.Create, productHandler.Update, productHandler.Delete)
	resource("/posts", postHandler.List, postHandler.Show, postHandler.Create, postHandler.Update, postHandler.Delete)
	resource("/applicants", applicantHandler.List, applicantHandler.Show, applicantHandler.Create, applicantHandler.Update, applicantHandler.Delete)
	resource("/certificate-badges", badgeHandler.List, badgeHandler.Show, badgeHandler.Create, badgeHandler.Update, badgeHandler.Delete)
	resource("/enquiries", enquiryHandler.List, enquiryHandler.Show, enquiryHandler.Create, enquiryHandler.Update, enquiryHandler.Delete)

	data.HandleFunc("/products/{id}/images", productImageHandler.Store).Methods("POST")
	data.HandleFunc("/posts/{id}/images", postImageHandler.Store).Methods("POST")
	data.HandleFunc("/product_images/{id}", productImageHandler.Destroy).Methods("DELETE")
	data.HandleFunc("/post_images/{id}", postImageHandler.Destroy).Methods("DELETE")

	return middlewares.MethodOverrideMiddleware(router)
}
