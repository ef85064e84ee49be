package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/opensamaj/samiti"
)

// SignalService fans profile change events out through redis pub/sub so
// admin tooling on any instance sees commits made on every instance.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, channel string, event samiti.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards profile.updated events to response until ctx is done or
// request closes. Member-id filters arriving on request replace the previous
// set; an empty set means everything.
func (s *SignalService) Realtime(ctx context.Context, request <-chan []string, response chan<- samiti.Event) {
	pubsub := s.rdb.Subscribe(ctx, samiti.EventProfileUpdated)
	defer pubsub.Close()

	filter := map[string]struct{}{}
	messages := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case ids, ok := <-request:
			if !ok {
				return
			}
			filter = make(map[string]struct{}, len(ids))
			for _, id := range ids {
				filter[id] = struct{}{}
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event samiti.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			if len(filter) > 0 {
				key := strconv.FormatUint(uint64(event.MemberID), 10)
				if _, listening := filter[key]; !listening {
					continue
				}
			}
			select {
			case response <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
