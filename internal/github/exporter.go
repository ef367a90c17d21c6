package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
	"github.com/tkc/taskquad/internal/domain"
)

// フィールド名定数（プロジェクトに存在する場合のみ更新する）
const (
	FieldUrgency    = "Urgency"
	FieldDue        = "Due"
	FieldCompletion = "Completion"
)

// ProjectField はProjectのカスタムフィールド
type ProjectField struct {
	ID      string
	Name    string
	Options []FieldOption // Single Select用
}

// FieldOption はSingle Selectのオプション
type FieldOption struct {
	ID   string
	Name string
}

// ExportedItem はエクスポートしたタスクとProject Itemの対応
type ExportedItem struct {
	Task   *domain.Task
	ItemID string
}

// Exporter はタスクをGitHub Projectのドラフトとして書き出す
type Exporter struct {
	client        *Client
	projectID     string
	projectNumber int
	fields        map[string]ProjectField // フィールド名 -> フィールド情報
}

// NewExporter は新しいExporterを作成する
func NewExporter(client *Client, projectNumber int) *Exporter {
	return &Exporter{
		client:        client,
		projectNumber: projectNumber,
		fields:        make(map[string]ProjectField),
	}
}

// Initialize はProjectの情報を取得してExporterを初期化する
func (e *Exporter) Initialize(ctx context.Context) error {
	project, err := e.client.GetProjectByNumber(ctx, e.projectNumber)
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}
	e.projectID = project.ID

	if err := e.loadFields(ctx); err != nil {
		return fmt.Errorf("failed to load fields: %w", err)
	}
	return nil
}

// Fields は読み込んだフィールド情報を返す
func (e *Exporter) Fields() map[string]ProjectField {
	return e.fields
}

func (e *Exporter) loadFields(ctx context.Context) error {
	var query struct {
		Node struct {
			ProjectV2 struct {
				Fields struct {
					Nodes []struct {
						TypeName    string `graphql:"__typename"`
						FieldCommon struct {
							ID   string
							Name string
						} `graphql:"... on ProjectV2FieldCommon"`
						SingleSelect struct {
							Options []struct {
								ID   string
								Name string
							}
						} `graphql:"... on ProjectV2SingleSelectField"`
					}
				} `graphql:"fields(first: 30)"`
			} `graphql:"... on ProjectV2"`
		} `graphql:"node(id: $projectId)"`
	}

	variables := map[string]interface{}{
		"projectId": githubv4.ID(e.projectID),
	}

	if err := e.client.gql.Query(ctx, &query, variables); err != nil {
		return err
	}

	for _, f := range query.Node.ProjectV2.Fields.Nodes {
		field := ProjectField{
			ID:   f.FieldCommon.ID,
			Name: f.FieldCommon.Name,
		}
		if f.TypeName == "ProjectV2SingleSelectField" {
			for _, opt := range f.SingleSelect.Options {
				field.Options = append(field.Options, FieldOption{
					ID:   opt.ID,
					Name: opt.Name,
				})
			}
		}
		e.fields[f.FieldCommon.Name] = field
	}
	return nil
}

// Export はタスクごとにドラフトIssueを作成し、対応するフィールドを埋める
// 途中で失敗した場合はそれまでに作成した分を返す
func (e *Exporter) Export(ctx context.Context, tasks []*domain.Task) ([]ExportedItem, error) {
	if e.projectID == "" {
		return nil, fmt.Errorf("exporter is not initialized")
	}

	items := make([]ExportedItem, 0, len(tasks))
	for _, t := range tasks {
		itemID, err := e.addDraft(ctx, DraftTitle(t), DraftBody(t))
		if err != nil {
			return items, fmt.Errorf("failed to add %q: %w", t.Description, err)
		}
		if err := e.fillFields(ctx, itemID, t); err != nil {
			return items, fmt.Errorf("failed to update fields for %q: %w", t.Description, err)
		}
		items = append(items, ExportedItem{Task: t, ItemID: itemID})
	}
	return items, nil
}

// DraftTitle はドラフトIssueのタイトルを返す
func DraftTitle(t *domain.Task) string {
	return fmt.Sprintf("[%s] %s", t.Urgency, t.Description)
}

// DraftBody はドラフトIssueの本文を返す
func DraftBody(t *domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Category:** %s\n", t.Category)
	fmt.Fprintf(&b, "**Due:** %s\n", t.DueDate.Format(domain.DateLayout))
	fmt.Fprintf(&b, "**Completion:** %d%%\n", t.Completion)
	fmt.Fprintf(&b, "**Hours remaining:** %g\n", t.HoursRemaining)
	fmt.Fprintf(&b, "\n---\n*Exported by taskquad (%s)*", t.ID)
	return b.String()
}

func (e *Exporter) addDraft(ctx context.Context, title, body string) (string, error) {
	var mutation struct {
		AddProjectV2DraftIssue struct {
			ProjectItem struct {
				ID string
			}
		} `graphql:"addProjectV2DraftIssue(input: $input)"`
	}

	input := githubv4.AddProjectV2DraftIssueInput{
		ProjectID: githubv4.ID(e.projectID),
		Title:     githubv4.String(title),
		Body:      githubv4.NewString(githubv4.String(body)),
	}

	if err := e.client.gql.Mutate(ctx, &mutation, input, nil); err != nil {
		return "", err
	}
	return mutation.AddProjectV2DraftIssue.ProjectItem.ID, nil
}

func (e *Exporter) fillFields(ctx context.Context, itemID string, t *domain.Task) error {
	if field, ok := e.fields[FieldUrgency]; ok {
		if optionID := optionID(field, string(t.Urgency)); optionID != "" {
			value := githubv4.ProjectV2FieldValue{
				SingleSelectOptionID: githubv4.NewString(githubv4.String(optionID)),
			}
			if err := e.updateField(ctx, itemID, field, value); err != nil {
				return err
			}
		}
	}

	if field, ok := e.fields[FieldDue]; ok {
		value := githubv4.ProjectV2FieldValue{
			Date: &githubv4.Date{Time: t.DueDate},
		}
		if err := e.updateField(ctx, itemID, field, value); err != nil {
			return err
		}
	}

	if field, ok := e.fields[FieldCompletion]; ok {
		value := githubv4.ProjectV2FieldValue{
			Number: githubv4.NewFloat(githubv4.Float(t.Completion)),
		}
		if err := e.updateField(ctx, itemID, field, value); err != nil {
			return err
		}
	}
	return nil
}

func optionID(field ProjectField, name string) string {
	for _, opt := range field.Options {
		if strings.EqualFold(opt.Name, name) {
			return opt.ID
		}
	}
	return ""
}

func (e *Exporter) updateField(ctx context.Context, itemID string, field ProjectField, value githubv4.ProjectV2FieldValue) error {
	var mutation struct {
		UpdateProjectV2ItemFieldValue struct {
			ProjectV2Item struct {
				ID string
			}
		} `graphql:"updateProjectV2ItemFieldValue(input: $input)"`
	}

	input := githubv4.UpdateProjectV2ItemFieldValueInput{
		ProjectID: githubv4.ID(e.projectID),
		ItemID:    githubv4.ID(itemID),
		FieldID:   githubv4.ID(field.ID),
		Value:     value,
	}

	if err := e.client.gql.Mutate(ctx, &mutation, input, nil); err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}
	return nil
}
