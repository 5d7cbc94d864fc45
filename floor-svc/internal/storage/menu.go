package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"overcooked-floor/floor-svc/internal/domain"
	"overcooked-floor/floor-svc/internal/service"
)

// MenuRepository reads the catalog owned by the menu service. This service never writes to it.
type MenuRepository struct {
	DB *sql.DB
}

func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) MenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, location_id, name, price, available
		FROM menu_items
		WHERE id = $1
	`, menuItemID).Scan(&item.ID, &item.LocationID, &item.Name, &item.Price, &item.Available)
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *MenuRepository) MenuOption(ctx context.Context, menuItemID, optionID string) (*domain.MenuOption, error) {
	var opt domain.MenuOption
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, menu_item_id, name, price
		FROM menu_options
		WHERE id = $1 AND menu_item_id = $2
	`, optionID, menuItemID).Scan(&opt.ID, &opt.MenuItemID, &opt.Name, &opt.Price)
	if err != nil {
		return nil, notFound(err)
	}
	return &opt, nil
}

// RedisMenuCache is a read-through cache in front of another catalog. Redis failures fall
// through to the source.
type RedisMenuCache struct {
	Client *redis.Client
	TTL    time.Duration
	Source service.MenuCatalog
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration, source service.MenuCatalog) *RedisMenuCache {
	return &RedisMenuCache{Client: client, TTL: ttl, Source: source}
}

func (c *RedisMenuCache) ItemKey(menuItemID string) string {
	return "menu:item:" + menuItemID
}

func (c *RedisMenuCache) OptionKey(menuItemID, optionID string) string {
	return "menu:option:" + menuItemID + ":" + optionID
}

func (c *RedisMenuCache) MenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	key := c.ItemKey(menuItemID)
	var cached domain.MenuItem
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := c.Source.MenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, item)
	return item, nil
}

func (c *RedisMenuCache) MenuOption(ctx context.Context, menuItemID, optionID string) (*domain.MenuOption, error) {
	key := c.OptionKey(menuItemID, optionID)
	var cached domain.MenuOption
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	opt, err := c.Source.MenuOption(ctx, menuItemID, optionID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, opt)
	return opt, nil
}

// Invalidate removes the cached item and every cached option of it.
func (c *RedisMenuCache) Invalidate(ctx context.Context, menuItemID string) error {
	keys := []string{c.ItemKey(menuItemID)}
	iter := c.Client.Scan(ctx, 0, c.OptionKey(menuItemID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (c *RedisMenuCache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *RedisMenuCache) set(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, key, payload, c.TTL).Err()
}

// LocationAccess answers location permission checks from the staff roster.
type LocationAccess struct {
	DB *sql.DB
}

func NewLocationAccess(db *sql.DB) *LocationAccess {
	return &LocationAccess{DB: db}
}

func (a *LocationAccess) CanAccessLocation(ctx context.Context, userID, locationID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var ok bool
	err := a.DB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM location_staff
			WHERE user_id = $1 AND location_id = $2 AND active
		)
	`, userID, locationID).Scan(&ok)
	return ok, err
}

var (
	_ service.MenuCatalog   = (*MenuRepository)(nil)
	_ service.MenuCatalog   = (*RedisMenuCache)(nil)
	_ service.AccessChecker = (*LocationAccess)(nil)

	_ service.MenuCacheInvalidator = (*RedisMenuCache)(nil)
)
