package store

import (
	"fmt"
	"io"

	"shorturl-platform/internal/model"
)

// Store 聚合所有表。表是进程内共享的可变状态, 只能通过这里访问。
type Store struct {
	Links     *Table[model.Link]
	Clicks    *Table[model.Click]
	Campaigns *Table[model.Campaign]
	Domains   *Table[model.Domain]
	Users     *Table[model.User]

	medium Medium
}

// New 在给定介质上创建存储
func New(medium Medium) *Store {
	return &Store{
		Links:     newTable(model.TableLinks, model.LinkColumns, medium, model.Link.Row, model.LinkFromRow),
		Clicks:    newTable(model.TableClicks, model.ClickColumns, medium, model.Click.Row, model.ClickFromRow),
		Campaigns: newTable(model.TableCampaigns, model.CampaignColumns, medium, model.Campaign.Row, model.CampaignFromRow),
		Domains:   newTable(model.TableDomains, model.DomainColumns, medium, model.Domain.Row, model.DomainFromRow),
		Users:     newTable(model.TableUsers, model.UserColumns, medium, model.User.Row, model.UserFromRow),
		medium:    medium,
	}
}

// Close 释放介质持有的资源
func (s *Store) Close() error {
	if c, ok := s.medium.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("store.Close: %w", err)
		}
	}
	return nil
}
