package loader

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ecomai/backend-go/internal/logger"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Loader 商品目录CSV导入器
// 每个文件在单独的事务中用COPY批量写入
type Loader struct {
	db     *sql.DB
	logger *zap.Logger
}

// New 创建导入器
func New(db *sql.DB) *Loader {
	return &Loader{db: db, logger: logger.GetLogger()}
}

// LoadAll 依次导入数据目录下的全部CSV文件
// 缺失的文件跳过并告警，不视为错误
func (l *Loader) LoadAll(dataDir string) error {
	steps := []struct {
		file string
		fn   func(string) error
	}{
		{"users.csv", l.LoadUsers},
		{"product.csv", l.LoadProducts},
		{"distribution_centers.csv", l.LoadDistributionCenters},
		{"inventory_items.csv", l.LoadInventoryItems},
		{"orders.csv", l.LoadOrders},
		{"order_items.csv", l.LoadOrderItems},
	}

	for _, step := range steps {
		path := filepath.Join(dataDir, step.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			l.logger.Warn("CSV file missing, skipping", zap.String("file", path))
			continue
		}
		if err := step.fn(path); err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
	}
	return nil
}

// LoadUsers 导入用户数据
func (l *Loader) LoadUsers(path string) error {
	return l.copyCSV(path, "users",
		[]string{"user_id", "first_name", "last_name", "email", "age", "gender", "state",
			"address", "postal_code", "city", "country", "latitude", "longitude",
			"traffic_source", "created_at"},
		func(rec record) ([]interface{}, error) {
			u, err := ParseUserRecord(rec)
			if err != nil {
				return nil, err
			}
			return []interface{}{u.ID, u.FirstName, u.LastName, u.Email, u.Age, u.Gender,
				u.State, u.Address, u.PostalCode, u.City, u.Country, u.Latitude,
				u.Longitude, u.TrafficSource, u.CreatedAt}, nil
		},
		// COPY写入显式主键不会推进序列，重置后注册接口才能继续分配ID
		"SELECT setval('users_user_id_seq', (SELECT COALESCE(MAX(user_id), 1) FROM users))")
}

// LoadProducts 导入商品数据
func (l *Loader) LoadProducts(path string) error {
	return l.copyCSV(path, "products",
		[]string{"product_id", "name", "category", "price", "description"},
		func(rec record) ([]interface{}, error) {
			price, err := parseFloat(rec.get("price"))
			if err != nil {
				return nil, fmt.Errorf("price: %w", err)
			}
			return []interface{}{rec.get("product_id"), rec.get("name"), rec.get("category"),
				price, rec.get("description")}, nil
		})
}

// LoadDistributionCenters 导入配送中心数据
func (l *Loader) LoadDistributionCenters(path string) error {
	return l.copyCSV(path, "distribution_centers",
		[]string{"center_id", "name", "location"},
		func(rec record) ([]interface{}, error) {
			return []interface{}{rec.get("center_id"), rec.get("name"), rec.get("location")}, nil
		})
}

// LoadInventoryItems 导入库存数据
func (l *Loader) LoadInventoryItems(path string) error {
	return l.copyCSV(path, "inventory_items",
		[]string{"inventory_id", "product_id", "center_id", "stock"},
		func(rec record) ([]interface{}, error) {
			stock, err := parseInt(rec.get("stock"))
			if err != nil {
				return nil, fmt.Errorf("stock: %w", err)
			}
			return []interface{}{rec.get("inventory_id"), rec.get("product_id"),
				rec.get("center_id"), stock}, nil
		})
}

// LoadOrders 导入订单数据
func (l *Loader) LoadOrders(path string) error {
	return l.copyCSV(path, "orders",
		[]string{"order_id", "user_id", "order_date", "status"},
		func(rec record) ([]interface{}, error) {
			userID, err := parseInt(rec.get("user_id"))
			if err != nil {
				return nil, fmt.Errorf("user_id: %w", err)
			}
			orderDate, err := ParseDate(rec.get("order_date"))
			if err != nil {
				return nil, fmt.Errorf("order_date: %w", err)
			}
			return []interface{}{rec.get("order_id"), userID, orderDate, rec.get("status")}, nil
		})
}

// LoadOrderItems 导入订单明细数据
func (l *Loader) LoadOrderItems(path string) error {
	return l.copyCSV(path, "order_items",
		[]string{"order_item_id", "order_id", "product_id", "quantity", "price"},
		func(rec record) ([]interface{}, error) {
			quantity, err := parseInt(rec.get("quantity"))
			if err != nil {
				return nil, fmt.Errorf("quantity: %w", err)
			}
			price, err := parseFloat(rec.get("price"))
			if err != nil {
				return nil, fmt.Errorf("price: %w", err)
			}
			return []interface{}{rec.get("order_item_id"), rec.get("order_id"),
				rec.get("product_id"), quantity, price}, nil
		})
}

// record 带表头索引的一行CSV
type record struct {
	header map[string]int
	fields []string
}

func (r record) get(name string) string {
	idx, ok := r.header[name]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

// UserRow 用户CSV一行的解析结果
type UserRow struct {
	ID            int
	FirstName     string
	LastName      string
	Email         string
	Age           int
	Gender        string
	State         string
	Address       string
	PostalCode    string
	City          string
	Country       string
	Latitude      float64
	Longitude     float64
	TrafficSource string
	CreatedAt     time.Time
}

// ParseUserRecord 解析用户CSV行
// 地址列在源数据中叫street_address；created_at可能带"+00:00 UTC"尾缀
func ParseUserRecord(rec record) (*UserRow, error) {
	id, err := parseInt(rec.get("id"))
	if err != nil {
		return nil, fmt.Errorf("id: %w", err)
	}
	age, err := parseInt(rec.get("age"))
	if err != nil {
		return nil, fmt.Errorf("age: %w", err)
	}
	lat, err := parseFloat(rec.get("latitude"))
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lng, err := parseFloat(rec.get("longitude"))
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	createdAt, err := ParseTimestamp(rec.get("created_at"))
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}

	return &UserRow{
		ID:            id,
		FirstName:     rec.get("first_name"),
		LastName:      rec.get("last_name"),
		Email:         rec.get("email"),
		Age:           age,
		Gender:        rec.get("gender"),
		State:         rec.get("state"),
		Address:       rec.get("street_address"),
		PostalCode:    rec.get("postal_code"),
		City:          rec.get("city"),
		Country:       rec.get("country"),
		Latitude:      lat,
		Longitude:     lng,
		TrafficSource: rec.get("traffic_source"),
		CreatedAt:     createdAt,
	}, nil
}

// ParseTimestamp 解析CSV时间戳，截断时区尾缀
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if idx := strings.Index(value, "+"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999",
		"2006-01-02 15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// ParseDate 解析CSV日期
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	// 订单日期有时带时间部分
	return ParseTimestamp(value)
}

func parseInt(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

// copyCSV 读取CSV并在一个事务中用COPY写入目标表
// postSQL在COPY完成后、提交前于同一事务中执行
func (l *Loader) copyCSV(path, table string, columns []string, mapRow func(record) ([]interface{}, error), postSQL ...string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headerFields, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	header := make(map[string]int, len(headerFields))
	for i, name := range headerFields {
		header[strings.TrimSpace(name)] = i
	}

	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn(table, columns...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	count := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}

		values, err := mapRow(record{header: header, fields: fields})
		if err != nil {
			return fmt.Errorf("row %d: %w", count+1, err)
		}
		if _, err := stmt.Exec(values...); err != nil {
			return fmt.Errorf("copy row %d: %w", count+1, err)
		}
		count++
	}

	// 空Exec刷新COPY缓冲
	if _, err := stmt.Exec(); err != nil {
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}
	for _, stmtSQL := range postSQL {
		if _, err := tx.Exec(stmtSQL); err != nil {
			return fmt.Errorf("post-copy statement: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	l.logger.Info("CSV loaded", zap.String("table", table), zap.Int("rows", count))
	return nil
}
