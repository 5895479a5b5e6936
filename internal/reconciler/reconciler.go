package reconciler

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qs3c/qa_board_server/internal/model"
	"github.com/qs3c/qa_board_server/internal/model/dto"
	"github.com/qs3c/qa_board_server/internal/pkg/pubsub"
	"github.com/qs3c/qa_board_server/internal/repository"
)

// Reconciler 维护问答板的内存快照。
// 变更事件只当触发信号用，内容一律从数据库整体重载，
// 事件重复、乱序、丢字段都不影响最终一致。
// 读方拿到的永远是完整的旧版或完整的新版，不存在中间态。
type Reconciler struct {
	questionRepo *repository.QuestionRepository
	subscriber   *pubsub.Subscriber
	debounce     time.Duration

	snapshot atomic.Value // []*dto.QuestionView
	dirty    chan struct{}
	reloads  int64

	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(questionRepo *repository.QuestionRepository, subscriber *pubsub.Subscriber, debounce time.Duration) *Reconciler {
	r := &Reconciler{
		questionRepo: questionRepo,
		subscriber:   subscriber,
		debounce:     debounce,
		dirty:        make(chan struct{}, 1),
	}
	r.snapshot.Store([]*dto.QuestionView{})
	return r
}

// Start 全量加载初始快照，然后订阅变更事件驱动后续重载。
// 初始加载失败直接返回错误，不以空快照对外服务。
func (r *Reconciler) Start(ctx context.Context) error {
	if err := r.reload(); err != nil {
		return err
	}

	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.subscriber.Subscribe(ctx, func(*pubsub.ChangeEvent) {
			r.markDirty()
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("变更订阅中断: %v", err)
		}
	}()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.reloadLoop(ctx)
	}()

	return nil
}

// Snapshot 返回当前快照，调用方只读
func (r *Reconciler) Snapshot() []*dto.QuestionView {
	return r.snapshot.Load().([]*dto.QuestionView)
}

// ReloadCount 累计重载次数，用于观测事件合并效果
func (r *Reconciler) ReloadCount() int64 {
	return atomic.LoadInt64(&r.reloads)
}

// Stop 幂等停止：取消订阅，等后台协程退出
func (r *Reconciler) Stop() {
	r.stopOnce.Do(func() {
		if r.cancel != nil {
			r.cancel()
		}
		r.wg.Wait()
	})
}

// markDirty 置脏。缓冲为 1，重载期间积压的多个事件合并成一次
func (r *Reconciler) markDirty() {
	select {
	case r.dirty <- struct{}{}:
	default:
	}
}

func (r *Reconciler) reloadLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.dirty:
		}

		// 短暂停顿，让同一阵变更落在同一次重载里
		if r.debounce > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.debounce):
			}
		}

		// 停顿期间的标记并入本次重载，否则同一阵变更会触发第二次
		select {
		case <-r.dirty:
		default:
		}

		if err := r.reload(); err != nil {
			if ctx.Err() != nil {
				return
			}
			// 重载失败保留旧快照，等下一个事件再试
			log.Printf("快照重载失败: %v", err)
		}
	}
}

func (r *Reconciler) reload() error {
	questions, err := r.questionRepo.ListWithAnswers()
	if err != nil {
		return err
	}

	r.snapshot.Store(buildViews(questions))
	atomic.AddInt64(&r.reloads, 1)
	return nil
}

func buildViews(questions []*model.Question) []*dto.QuestionView {
	views := make([]*dto.QuestionView, 0, len(questions))
	for _, q := range questions {
		view := &dto.QuestionView{
			ID:        q.ID,
			Title:     q.Title,
			Content:   q.Content,
			VideoURL:  q.VideoURL,
			CreatedAt: q.CreatedAt.Format(time.RFC3339),
			Answers:   make([]*dto.AnswerView, 0, len(q.Answers)),
		}
		if q.User != nil {
			view.Author = q.User.Username
		}
		for _, a := range q.Answers {
			av := &dto.AnswerView{
				ID:        a.ID,
				Content:   a.Content,
				Upvotes:   a.Upvotes,
				CreatedAt: a.CreatedAt.Format(time.RFC3339),
			}
			if a.User != nil {
				av.Author = a.User.Username
			}
			view.Answers = append(view.Answers, av)
		}
		views = append(views, view)
	}
	return views
}
