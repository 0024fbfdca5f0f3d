package dto

type PlanOutput struct {
	Name          string
	Title         string
	Price         string
	Amount        int
	OriginalPrice string
	Badge         string
	Description   string
	Features      []string
}

type StartOutput struct {
	Plan      PlanOutput
	Till      string
	Method    string
	Reference string
	Text      string
	Link      string
	Opened    bool
	Warning   string
}

type ConfirmInput struct {
	Plan         string
	MpesaMessage string
}

type ConfirmOutput struct {
	Plan        PlanOutput
	Code        string
	Text        string
	Link        string
	Opened      bool
	ReceiptPath string
	Warning     string
}
