// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package database

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-arcade/console/pkg/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

const dataTablePrefix = "t_"

// IDatabase define database interface (abstract)
type IDatabase interface {
	// Database return the underlying *gorm.DB
	Database() *gorm.DB
}

// GormDB GORM database implementation
type GormDB struct {
	db *gorm.DB
}

// NewGormDB create GORM database instance
func NewGormDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db}
}

// Database return the underlying *gorm.DB
func (g *GormDB) Database() *gorm.DB {
	return g.db
}

// Close closes the underlying pool
func (g *GormDB) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewMySQL opens the primary connection and registers dbresolver for replicas
func NewMySQL(cfg Database) (*GormDB, error) {
	mc := cfg.MySQL
	dsn := buildMySQLDSN(mc.User, mc.Password, mc.Host, mc.Port, mc.DBName)

	var gormLogger gormlogger.Interface
	if cfg.OutPut {
		gormLogger = NewGormLoggerAdapter(gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Info,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}, gormlogger.Info)
	} else {
		gormLogger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dataTablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if len(mc.Replicas) > 0 {
		replicas, err := buildDialectors(mc.Replicas)
		if err != nil {
			return nil, fmt.Errorf("failed to build replica dialectors: %w", err)
		}
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: cfg.OutPut,
		}).
			SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime)).
			SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime)).
			SetMaxIdleConns(cfg.MaxIdleConns).
			SetMaxOpenConns(cfg.MaxOpenConns))
		if err != nil {
			return nil, fmt.Errorf("failed to register DBResolver plugin: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(GetConnMaxLifetime(cfg.MaxLifetime))
	sqlDB.SetConnMaxIdleTime(GetConnMaxIdleTime(cfg.MaxIdleTime))

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if cfg.AutoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	log.Infow("MySQL database connected", "host", mc.Host, "db", mc.DBName, "replicas", len(mc.Replicas))
	return &GormDB{db: db}, nil
}

// ReadDB 列表与批量查询走从库，未配置 replicas 时仍落到主库
func ReadDB(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Read)
}

var migrations struct {
	sync.Mutex
	models []any
}

// RegisterModels 登记 autoMigrate 需要建表的模型，通常在 repo 包 init 中调用
func RegisterModels(models ...any) {
	migrations.Lock()
	defer migrations.Unlock()
	migrations.models = append(migrations.models, models...)
}

func registeredModels() []any {
	migrations.Lock()
	defer migrations.Unlock()
	return slices.Clone(migrations.models)
}

func migrate(db *gorm.DB) error {
	models := registeredModels()
	if len(models) == 0 {
		return nil
	}
	return db.AutoMigrate(models...)
}
