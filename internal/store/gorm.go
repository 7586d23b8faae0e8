package store

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"shorturl-platform/internal/model"
)

// recordRow 把一张逻辑表的每一行存为 record_rows 中的一条 JSON 记录
type recordRow struct {
	ID    uint   `gorm:"primarykey"`
	Table string `gorm:"column:tbl;size:32;not null;index:idx_record_rows_tbl_seq,priority:1"`
	Seq   int    `gorm:"not null;index:idx_record_rows_tbl_seq,priority:2"`
	Data  string `gorm:"type:text;not null"`
}

func (recordRow) TableName() string {
	return "record_rows"
}

// GormMedium 基于 gorm 的关系型介质, 整表重写在一个事务内完成
type GormMedium struct {
	db *gorm.DB
}

// NewGormMedium 包装已打开的连接并迁移 record_rows 表
func NewGormMedium(db *gorm.DB) (*GormMedium, error) {
	const op = "store.NewGormMedium"

	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, unavailable(op, err)
	}
	return &GormMedium{db: db}, nil
}

func (m *GormMedium) Read(ctx context.Context, table string, columns []string) ([]model.Row, error) {
	const op = "store.GormMedium.Read"

	var records []recordRow
	if err := m.db.WithContext(ctx).Where("tbl = ?", table).Order("seq").Find(&records).Error; err != nil {
		return nil, unavailable(op, err)
	}

	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		row := make(model.Row, len(columns))
		if err := json.Unmarshal([]byte(rec.Data), &row); err != nil {
			return nil, unavailable(op, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *GormMedium) Write(ctx context.Context, table string, columns []string, rows []model.Row) error {
	const op = "store.GormMedium.Write"

	records := make([]recordRow, 0, len(rows))
	for i, row := range rows {
		projected := make(map[string]string, len(columns))
		for _, name := range columns {
			projected[name] = row[name]
		}
		data, err := json.Marshal(projected)
		if err != nil {
			return unavailable(op, err)
		}
		records = append(records, recordRow{Table: table, Seq: i, Data: string(data)})
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tbl = ?", table).Delete(&recordRow{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.CreateInBatches(records, 200).Error
	})
	if err != nil {
		return unavailable(op, err)
	}
	return nil
}

// Close 关闭底层连接池
func (m *GormMedium) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
