// Package cache implementa una caché read-through en Redis para las lecturas
// de productos por identidad (id, sku, barcode).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/metrics"
)

// DefaultTTL vigencia de una entrada cuando no se configura CACHE_TTL.
const DefaultTTL = 5 * time.Minute

const (
	keyPrefix = "catalog:product:"
	genPrefix = "catalog:product-gen:"
)

// fillScript guarda el producto solo si la generación de la clave no cambió desde
// que se leyó, antes de consultar la BD. KEYS[1]=clave, KEYS[2]=generación;
// ARGV[1]=generación leída, ARGV[2]=valor, ARGV[3]=TTL en ms.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Tipos de consulta cacheada.
const (
	lookupID      = "id"
	lookupSKU     = "sku"
	lookupBarcode = "barcode"
)

var (
	_ repository.ProductRepository = (*ProductCache)(nil)
	_ usecase.CacheEvicter         = (*ProductCache)(nil)
)

// Recorder recibe el resultado de cada consulta y el número de claves invalidadas.
type Recorder interface {
	CacheLookup(lookup, result string)
	CacheEvicted(keys int)
}

// ProductCache decora un ProductRepository. Solo GetByID, GetBySKU y GetByBarcode pasan por
// Redis; listados y conteos van directo al repositorio embebido. Los "no encontrado" no se cachean.
// Si Redis falla, se registra y se responde desde el repositorio.
//
// Cada clave tiene un contador de generación que Evict incrementa. Una lectura anota la
// generación antes de ir a la BD y solo llena la caché si sigue igual, así una lectura
// que cargó la fila vieja no vuelve a cachearla después de la invalidación.
type ProductCache struct {
	repository.ProductRepository

	client  redis.UniversalClient
	ttl     time.Duration
	log     zerolog.Logger
	metrics Recorder
	group   singleflight.Group
}

// NewProductCache construye la caché. rec puede ser nil.
func NewProductCache(repo repository.ProductRepository, client redis.UniversalClient, ttl time.Duration, log zerolog.Logger, rec Recorder) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{
		ProductRepository: repo,
		client:            client,
		ttl:               ttl,
		log:               log,
		metrics:           rec,
	}
}

// GetByID obtiene el producto desde Redis o, si no está, desde el repositorio.
func (c *ProductCache) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return c.readThrough(ctx, lookupID, strconv.FormatInt(id, 10), func() (*entity.Product, error) {
		return c.ProductRepository.GetByID(ctx, id)
	})
}

// GetBySKU obtiene el producto por SKU con caché.
func (c *ProductCache) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return c.readThrough(ctx, lookupSKU, sku, func() (*entity.Product, error) {
		return c.ProductRepository.GetBySKU(ctx, sku)
	})
}

// GetByBarcode obtiene el producto por barcode con caché.
func (c *ProductCache) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return c.readThrough(ctx, lookupBarcode, barcode, func() (*entity.Product, error) {
		return c.ProductRepository.GetByBarcode(ctx, barcode)
	})
}

// Evict borra las claves id/sku/barcode de cada producto (imagen anterior y posterior)
// e incrementa su generación.
func (c *ProductCache) Evict(ctx context.Context, products ...*entity.Product) {
	keys := make([]string, 0, len(products)*3)
	seen := make(map[string]struct{}, len(products)*3)
	add := func(lookup, value string) {
		k := key(lookup, value)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for _, p := range products {
		if p == nil {
			continue
		}
		add(lookupID, strconv.FormatInt(p.ID, 10))
		add(lookupSKU, p.SKU)
		if p.Barcode != nil {
			add(lookupBarcode, *p.Barcode)
		}
	}
	if len(keys) == 0 {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, k := range keys {
			pipe.Incr(ctx, genKey(k))
			pipe.PExpire(ctx, genKey(k), c.genTTL())
		}
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("no se pudo invalidar la caché")
		return
	}
	if c.metrics != nil {
		c.metrics.CacheEvicted(len(keys))
	}
}

func (c *ProductCache) readThrough(ctx context.Context, lookup, value string, load func() (*entity.Product, error)) (*entity.Product, error) {
	k := key(lookup, value)

	cached, err := c.get(ctx, k)
	switch {
	case err != nil:
		c.record(lookup, metrics.CacheError)
		c.log.Warn().Err(err).Str("key", k).Msg("error leyendo caché, se consulta la BD")
	case cached != nil:
		c.record(lookup, metrics.CacheHit)
		return cached, nil
	default:
		c.record(lookup, metrics.CacheMiss)
	}

	// Misses concurrentes sobre la misma clave comparten una sola consulta a la BD.
	v, err, _ := c.group.Do(k, func() (any, error) {
		gen, genErr := c.generation(ctx, k)
		p, err := load()
		if err != nil || p == nil {
			return p, err
		}
		if genErr != nil {
			return p, nil
		}
		if err := c.fill(ctx, k, gen, p); err != nil {
			c.log.Warn().Err(err).Str("key", k).Msg("no se pudo guardar en caché")
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p, _ := v.(*entity.Product)
	if p == nil {
		return nil, nil
	}
	// Copia: las llamadas agrupadas no comparten el mismo puntero.
	out := *p
	return &out, nil
}

func (c *ProductCache) get(ctx context.Context, k string) (*entity.Product, error) {
	data, err := c.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var p entity.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode cached product: %w", err)
	}
	return &p, nil
}

// generation devuelve el contador de la clave ("0" si nunca se invalidó).
func (c *ProductCache) generation(ctx context.Context, k string) (string, error) {
	gen, err := c.client.Get(ctx, genKey(k)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// fill guarda p si la generación sigue siendo gen. Si cambió, no hace nada.
func (c *ProductCache) fill(ctx context.Context, k, gen string, p *entity.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	return fillScript.Run(ctx, c.client, []string{k, genKey(k)}, gen, data, c.ttl.Milliseconds()).Err()
}

// genTTL mantiene el contador vivo bastante más que cualquier lectura en curso.
func (c *ProductCache) genTTL() time.Duration {
	return 2 * c.ttl
}

func (c *ProductCache) record(lookup, result string) {
	if c.metrics != nil {
		c.metrics.CacheLookup(lookup, result)
	}
}

func key(lookup, value string) string {
	return keyPrefix + lookup + ":" + value
}

func genKey(k string) string {
	return genPrefix + k[len(keyPrefix):]
}
