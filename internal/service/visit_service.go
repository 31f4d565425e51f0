package service

import (
	"context"
	"encoding/json"
	"fmt"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/repository"
	"linguacert_backend/pkg/logger"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// VisitService records page visits with a best-effort geo lookup. A failed
// or slow lookup never loses the visit; the row is written with placeholder
// location fields instead.
type VisitService struct {
	Repo   *repository.VisitRepository
	Config *config.GeoIPConfig
	Client *http.Client
}

func NewVisitService(repo *repository.VisitRepository, cfg *config.GeoIPConfig) *VisitService {
	return &VisitService{
		Repo:   repo,
		Config: cfg,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

type geoIPResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	City    string `json:"city"`
}

func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified()
}

func (s *VisitService) lookup(ctx context.Context, ip string) (country, city string) {
	country, city = "Unknown", "Unknown"
	if isPrivateIP(ip) {
		return "Local", "Local"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", s.Config.BaseURL, ip), nil)
	if err != nil {
		return
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		logger.Log.Warn("geoip lookup failed", zap.String("ip", ip), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var geo geoIPResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return
	}
	if geo.Status != "success" {
		return
	}
	if geo.Country != "" {
		country = geo.Country
	}
	if geo.City != "" {
		city = geo.City
	}
	return
}

func (s *VisitService) Track(ctx context.Context, ip string) (*model.Visit, error) {
	country, city := s.lookup(ctx, ip)
	visit := &model.Visit{
		IP:        ip,
		Country:   country,
		City:      city,
		Timestamp: time.Now(),
	}
	if err := s.Repo.Create(visit); err != nil {
		return nil, err
	}
	return visit, nil
}

func (s *VisitService) List() ([]model.Visit, error) {
	return s.Repo.FindAll()
}
