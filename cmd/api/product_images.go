package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"svitlo/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// uploadProductImageHandler godoc
//
//	@Summary		Upload product image
//	@Description	Uploads the product's display image to Cloudinary and records its URL
//	@Tags			Admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			productID	path		string	true	"Product ID"
//	@Param			image		formData	file	true	"Image file"
//	@Success		201			{object}	map[string]string
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/admin/products/{productID}/images [post]
func (app *application) uploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	const maxBytes = 8 * 1024 * 1024 // 8MB
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}

	productID := chi.URLParam(r, "productID")

	file, _, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("image file is required"))
		return
	}
	defer file.Close()

	publicID := fmt.Sprintf("product_%s_%d", productID, time.Now().UnixNano())
	imageURL, err := app.uploadToCloudinaryWithID(file, publicID)
	if err != nil {
		app.internalServerError(w, r, fmt.Errorf("failed to upload image: %w", err))
		return
	}

	if err := app.store.Catalog.AddProductImage(ctx, productID, imageURL); err != nil {
		// cleanup the orphaned upload
		go app.deletePhotoFromCloudinary(imageURL)

		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, fmt.Errorf("failed to save image: %w", err))
		return
	}

	app.jsonResponse(w, http.StatusCreated, map[string]string{
		"message":   "Image uploaded successfully",
		"image_url": imageURL,
	})
}
