package meme

import (
	"context"
	"fmt"
	"time"

	"github.com/TendTo/MemeBot/src/actions/core"
	sharedconfig "github.com/TendTo/MemeBot/src/config"
	shareddiscord "github.com/TendTo/MemeBot/src/discord"
	"github.com/TendTo/MemeBot/src/logging"
	"github.com/TendTo/MemeBot/src/metrics"
	"github.com/TendTo/MemeBot/src/moderation"
	"github.com/TendTo/MemeBot/src/shared/keylock"
	sharedmeme "github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/TendTo/MemeBot/src/submission"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var _ core.Module = (*Module)(nil)

// eventTimeout bounds the handling of one inbound event.
const eventTimeout = 30 * time.Second

// Deps are the collaborators the module does not build itself.
type Deps struct {
	Store         sharedmeme.Store
	Conversations submission.ConversationStore
	Events        sharedmeme.EventSink
	Logger        *zap.Logger
}

type Module struct {
	config        *sharedconfig.MemeConfig
	session       *discordgo.Session
	coord         *moderation.Coordinator
	machine       *submission.Machine
	limiter       *shareddiscord.Limiter
	actions       actionTable
	reviewChannel int64
	publicChannel int64
	log           *zap.Logger
	runtimeCtx    context.Context
	cancel        context.CancelFunc
}

func NewModule(cfg *sharedconfig.MemeConfig, deps Deps) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("meme: invalid configuration: %w", err)
	}
	reviewChannel, err := shareddiscord.ParseID(cfg.ReviewChannelID)
	if err != nil {
		return nil, err
	}
	publicChannel, err := shareddiscord.ParseID(cfg.PublicChannelID)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages

	log := logging.Resolve(deps.Logger, "meme")
	locks := keylock.New(0)
	gateway := shareddiscord.NewGateway(session)

	opts := []moderation.Option{moderation.WithLocks(locks), moderation.WithLogger(deps.Logger)}
	if deps.Events != nil {
		opts = append(opts, moderation.WithEventSink(deps.Events))
	}
	coord, err := moderation.New(moderation.Config{
		Quorum:         int64(cfg.Quorum),
		ReviewChannel:  reviewChannel,
		PublicChannel:  publicChannel,
		GatewayTimeout: cfg.GatewayTimeout,
	}, deps.Store, gateway, opts...)
	if err != nil {
		return nil, err
	}

	convs := deps.Conversations
	if convs == nil {
		convs = submission.NewMemoryStore(cfg.ConversationTTL)
	}
	// Conversations lock on a table of their own: Confirm hands off to the
	// coordinator, which locks on its table.
	machine := submission.NewMachine(
		submission.Config{PublicChannel: shareddiscord.ChannelMention(cfg.PublicChannelID)},
		convs, coord, nil, deps.Logger,
	)

	module := &Module{
		config:        cfg,
		session:       session,
		coord:         coord,
		machine:       machine,
		limiter:       shareddiscord.NewLimiter(cfg.InteractionRPS, cfg.InteractionBurst),
		reviewChannel: reviewChannel,
		publicChannel: publicChannel,
		log:           log,
	}
	module.actions = module.buildActionTable()
	module.initHandlers()
	return module, nil
}

// Name implements actions.Module.
func (m *Module) Name() string { return "meme" }

// Coordinator exposes the moderation core to other modules.
func (m *Module) Coordinator() *moderation.Coordinator { return m.coord }

func (m *Module) initHandlers() {
	m.session.AddHandler(m.onReady)
	m.session.AddHandler(m.onInteractionCreate)
	m.session.AddHandler(m.onMessageCreate)
}

func (m *Module) onReady(s *discordgo.Session, r *discordgo.Ready) {
	m.log.Info("logged in", zap.String("user", s.State.User.Username))

	if err := shareddiscord.RegisterSlashCommands(s, "", m.log, shareddiscord.UserCommands...); err != nil {
		m.log.Warn("failed to register user commands", zap.Error(err))
	}
	if m.config.GuildID == "" {
		m.log.Warn("guild_id not configured, moderator commands not registered")
		return
	}
	if err := shareddiscord.RegisterSlashCommands(s, m.config.GuildID, m.log, shareddiscord.ModeratorCommands...); err != nil {
		m.log.Warn("failed to register moderator commands", zap.Error(err))
	}
}

func (m *Module) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := shareddiscord.InteractionUser(i)
	if user == nil {
		return
	}
	if !m.limiter.Allow(user.ID) {
		metrics.InteractionsThrottled.Inc()
		m.respondEphemeral(s, i, msgSlowDown)
		return
	}

	ctx, cancel := m.eventContext()
	defer cancel()
	ev := &event{
		s:    s,
		i:    i,
		user: user,
		log:  m.log.With(zap.String("event_id", uuid.NewString()), zap.String("user", user.ID)),
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		m.handleCommand(ctx, ev)
	case discordgo.InteractionMessageComponent:
		action, ok := sharedmeme.ParseAction(i.MessageComponentData().CustomID)
		if !ok {
			return
		}
		m.actions.dispatch(ctx, action, ev)
	}
}

func (m *Module) eventContext() (context.Context, context.CancelFunc) {
	base := m.runtimeCtx
	if base == nil {
		base = context.Background()
	}
	return context.WithTimeout(base, eventTimeout)
}

func (m *Module) Start(ctx context.Context) error {
	runtimeCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.runtimeCtx = runtimeCtx

	if err := m.session.Open(); err != nil {
		cancel()
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	go m.sweepLimiter(runtimeCtx)
	return nil
}

func (m *Module) Stop(ctx context.Context) {
	if m.cancel != nil {
		m.cancel()
	}

	m.runtimeCtx = nil

	if m.session != nil {
		if err := m.session.Close(); err != nil {
			m.log.Warn("close session", zap.Error(err))
		}
	}
}

func (m *Module) sweepLimiter(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.limiter.Sweep()
		}
	}
}
