package handlers

import (
	"cradle/internal/cache"
	"cradle/internal/external"
	"cradle/internal/service"
)

type Handlers struct {
	services    *service.Services
	cacheClient *cache.Client
	blobClient  *external.BlobClient
}

func NewHandlers(services *service.Services, cacheClient *cache.Client, blobClient *external.BlobClient) *Handlers {
	return &Handlers{
		services:    services,
		cacheClient: cacheClient,
		blobClient:  blobClient,
	}
}
