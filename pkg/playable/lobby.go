package playable

func lobbyHandler(action string) HandlerFunc {
	switch action {
	case ActionJoin:
		return join
	case ActionReady:
		return ready
	case ActionLeaveLobby:
		return leaveLobby
	case ActionRequestLobbyData:
		return requestLobbyData
	}

	return nil
}

func join(t *Turn) error {
	if len(t.Data) != 0 {
		return ErrWrongData
	}

	s := t.Session
	if _, ok := s.Players[t.PlayerID]; ok {
		return ErrPlayerAlreadyJoined
	}

	if s.State.Started {
		return ErrGameAlreadyStarted
	}

	if len(s.Players) >= s.Settings.MaxPlayers {
		return ErrGameFull
	}

	s.AddPlayer(t.PlayerID)
	t.Broadcast(ActionJoin, Fields{
		FieldPlayer:  t.PlayerID,
		FieldPlayers: s.Order(),
	})

	return nil
}

func ready(t *Turn) error {
	player := t.Player()
	if player == nil {
		return ErrNotInLobby
	}

	if len(t.Data) != 1 {
		return ErrWrongData
	}

	if !t.Data.Has(FieldReady) {
		return ErrNoReadyProvided
	}

	isReady, ok := t.Data.GetBool(FieldReady)
	if !ok {
		return ErrWrongReadyValue
	}

	s := t.Session
	if s.State.Started {
		return ErrGameAlreadyStarted
	}

	player.Ready = isReady
	t.Broadcast(ActionReady, Fields{
		FieldPlayer:  t.PlayerID,
		FieldReady:   isReady,
		FieldPlayers: s.ReadyFlags(),
	})

	if !s.AllReady() || len(s.Players) < t.variant.MinPlayers() {
		return nil
	}

	return t.variant.Start(t)
}

func leaveLobby(t *Turn) error {
	if len(t.Data) != 0 {
		return ErrWrongData
	}

	s := t.Session
	if s.State.Started {
		return ErrGameAlreadyStarted
	}

	if _, ok := s.Players[t.PlayerID]; !ok {
		return ErrNotInLobby
	}

	s.RemovePlayer(t.PlayerID)
	t.Broadcast(ActionLeaveLobby, Fields{
		FieldPlayer:  t.PlayerID,
		FieldPlayers: s.Order(),
	})

	return nil
}

func requestLobbyData(t *Turn) error {
	if len(t.Data) != 0 {
		return ErrWrongData
	}

	t.Reply(ActionLobbyData, Fields{FieldPlayers: t.Session.ReadyFlags()})
	return nil
}

func requestGameData(t *Turn) error {
	if len(t.Data) != 0 {
		return ErrWrongData
	}

	if !t.Session.State.Started {
		return ErrGameNotStarted
	}

	if t.Player() == nil {
		return ErrNotInLobby
	}

	t.Reply(ActionGameData, t.variant.GameData(t))
	return nil
}
