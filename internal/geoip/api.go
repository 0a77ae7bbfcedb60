package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Info is the geo information kept per IP address.
type Info struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Region      string `json:"region"`
	Country     string `json:"country"`
	CountryName string `json:"countryName"`
	Postal      string `json:"postal"`
	Timezone    string `json:"timezone"`
}

func (i Info) String() string {
	if i.City == "" && i.CountryName == "" {
		return i.IP
	}
	return fmt.Sprintf("%s, %s", i.City, i.CountryName)
}

var devGeoInfo = Info{
	IP:          "127.0.0.1",
	City:        "Berlin",
	Country:     "DE",
	CountryName: "Germany",
	Timezone:    "Europe/Berlin",
}

type Api struct {
	mu           sync.Mutex
	ipInfoClient *ipinfo.Client
	redisClient  *redis.Client
}

func NewApi(
	ipInfoClient *ipinfo.Client,
	redisClient *redis.Client,
) *Api {
	return &Api{
		ipInfoClient: ipInfoClient,
		redisClient:  redisClient,
	}
}

func (gi *Api) GetRequestGeoInfo(ctx context.Context, r *http.Request) (*Info, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.getRequestGeoInfo")
	defer span.End()

	userIp, err := pkg.ReadUserIP(r)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("get user ip: %s", err))
		return nil, fmt.Errorf("get user ip: %w", err)
	}
	span.SetAttributes(attribute.String("user.ip", userIp))

	return gi.GetIPGeoInfo(ctx, userIp)
}

func (gi *Api) GetIPGeoInfo(ctx context.Context, userIp string) (*Info, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.getIpGeoInfo")
	defer span.End()

	// used for development
	if userIp == "localhost" {
		log.Debugf("ip geo info: returning development localhost / Berlin")
		return &devGeoInfo, nil
	}

	// the ip info api free plan has a monthly quota; the frontend client makes
	// a few concurrent requests upon opening the dashboard, all of them asking
	// for the same caller ip, so serialize here and try the redis cache first
	gi.mu.Lock()
	defer gi.mu.Unlock()

	userIpKey := fmt.Sprintf("ip-info::%s", userIp)
	cmd := gi.redisClient.Get(ctx, userIpKey)
	if err := cmd.Err(); err != nil && err != redis.Nil {
		log.Errorf("failed to find ip info in redis for [%s]: %s", userIpKey, err)
	}

	if cachedInfo := cmd.Val(); cachedInfo != "" {
		span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
		log.Tracef("found geo ip info for [%s] in redis cache", userIp)
		info := &Info{}
		if err := json.Unmarshal([]byte(cachedInfo), info); err == nil {
			return info, nil
		} else {
			log.Errorf("failed to unmarshal cached ip info from redis for %s: %s", userIp, err)
			// continue, and try getting it from the ip info api
		}
	} else {
		span.SetAttributes(attribute.Bool("user.ip.from-cache", false))
		log.Debugf("ip info value from redis not found for [%s]", userIp)
	}

	ip := net.ParseIP(userIp)
	if ip == nil {
		span.SetStatus(codes.Error, "invalid ip")
		return nil, fmt.Errorf("ip addr %s is invalid", userIp)
	}

	log.Debugf("will ask ip info api for: %s", userIp)
	core, err := gi.ipInfoClient.GetIPInfo(ip)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("get ip info: %s", err))
		return nil, fmt.Errorf("get ip info for %s: %w", userIp, err)
	}

	info := &Info{
		IP:          core.IP.String(),
		City:        core.City,
		Region:      core.Region,
		Country:     core.Country,
		CountryName: core.CountryName,
		Postal:      core.Postal,
		Timezone:    core.Timezone,
	}

	// cache response in redis
	infoBytes, err := json.Marshal(info)
	if err != nil {
		log.Errorf("failed to marshal ip info for caching %s: %s", userIp, err)
		return info, nil
	}
	if err := gi.redisClient.Set(ctx, userIpKey, infoBytes, 0).Err(); err != nil {
		log.Errorf("failed to cache ip info in redis for %s: %s", userIp, err)
	} else {
		log.Debugf("ip info cache set in redis for: %s", userIp)
	}

	return info, nil
}
